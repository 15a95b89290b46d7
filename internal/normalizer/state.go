package normalizer

import (
	"strconv"

	"auctionload/internal/models"
)

const nullMarker = models.NullMarker

// State holds the entity collections built up over one batch run.
// Collections keep insertion order so output is deterministic.
// A State is not safe for concurrent use.
type State struct {
	items      map[string]*models.Item
	itemOrder  []string
	users      map[string]*models.User
	userOrder  []string
	categories map[string]*models.Category
	catOrder   []string
	bids       []models.Bid
}

// NewState returns empty collections for a new batch run.
func NewState() *State {
	return &State{
		items:      make(map[string]*models.Item),
		users:      make(map[string]*models.User),
		categories: make(map[string]*models.Category),
	}
}

// HasItem reports whether an item with this ID has been recorded.
func (s *State) HasItem(itemID string) bool {
	_, ok := s.items[itemID]
	return ok
}

// Item returns the stored item.
func (s *State) Item(itemID string) (models.Item, bool) {
	it, ok := s.items[itemID]
	if !ok {
		return models.Item{}, false
	}

	return *it, true
}

// User returns the stored user.
func (s *State) User(userID string) (models.User, bool) {
	u, ok := s.users[userID]
	if !ok {
		return models.User{}, false
	}

	return *u, true
}

// Category returns the stored category.
func (s *State) Category(name string) (models.Category, bool) {
	c, ok := s.categories[name]
	if !ok {
		return models.Category{}, false
	}

	return models.Category{Name: c.Name, Items: append([]string(nil), c.Items...)}, true
}

// Bids returns a copy of the bid log.
func (s *State) Bids() []models.Bid {
	return append([]models.Bid(nil), s.bids...)
}

// Counts returns the number of entities per relation.
func (s *State) Counts() map[string]int {
	pairs := 0
	for _, c := range s.categories {
		pairs += len(c.Items)
	}

	return map[string]int{
		models.RelationItems:      len(s.itemOrder),
		models.RelationUsers:      len(s.userOrder),
		models.RelationCategories: pairs,
		models.RelationBids:       len(s.bids),
	}
}

// addItem inserts it unless the ID is already known. It reports whether it was inserted.
func (s *State) addItem(it models.Item) bool {
	if _, ok := s.items[it.ItemID]; ok {
		return false
	}

	s.items[it.ItemID] = &it
	s.itemOrder = append(s.itemOrder, it.ItemID)

	return true
}

// addUser inserts u unless the ID is already known, whichever role introduced it.
func (s *State) addUser(u models.User) bool {
	if _, ok := s.users[u.UserID]; ok {
		return false
	}

	s.users[u.UserID] = &u
	s.userOrder = append(s.userOrder, u.UserID)

	return true
}

// addCategoryMember links itemID to the category, ignoring repeats.
func (s *State) addCategoryMember(name, itemID string) {
	c, ok := s.categories[name]
	if !ok {
		s.categories[name] = &models.Category{Name: name, Items: []string{itemID}}
		s.catOrder = append(s.catOrder, name)

		return
	}

	for _, id := range c.Items {
		if id == itemID {
			return
		}
	}

	c.Items = append(c.Items, itemID)
}

func (s *State) addBid(b models.Bid) {
	s.bids = append(s.bids, b)
}

// Relations flattens the collections into the four output relations.
func (s *State) Relations() []models.Relation {
	items := models.Relation{Name: models.RelationItems, Columns: models.ItemColumns}
	for _, id := range s.itemOrder {
		it := s.items[id]
		items.Rows = append(items.Rows, []string{
			it.ItemID,
			it.Name,
			it.Currently,
			it.FirstBid,
			strconv.FormatInt(it.NumberOfBids, 10),
			it.BuyPrice,
			it.Started,
			it.Ends,
			it.SellerID,
			it.Description,
		})
	}

	users := models.Relation{Name: models.RelationUsers, Columns: models.UserColumns}
	for _, id := range s.userOrder {
		u := s.users[id]
		users.Rows = append(users.Rows, []string{
			EscapeQuote(&u.UserID),
			strconv.FormatInt(u.Rating, 10),
			u.Location,
			u.Country,
		})
	}

	cats := models.Relation{Name: models.RelationCategories, Columns: models.CategoryColumns}
	for _, name := range s.catOrder {
		// Category names are written raw.
		c := s.categories[name]
		for _, itemID := range c.Items {
			cats.Rows = append(cats.Rows, []string{itemID, c.Name})
		}
	}

	bids := models.Relation{Name: models.RelationBids, Columns: models.BidColumns}
	for _, b := range s.bids {
		bids.Rows = append(bids.Rows, []string{b.ItemID, b.UserID, b.Time, b.Amount})
	}

	return []models.Relation{items, users, cats, bids}
}
