// Package normalizer turns raw auction listing records into deduplicated
// Item, User, Category and Bid entities.
package normalizer

import (
	"strconv"

	"auctionload/internal/models"
)

// Processor applies the entity extraction rules to item records and
// accumulates the results in its State across documents.
type Processor struct {
	validator *Validator
	state     *State
}

// NewProcessor creates a processor with empty collections.
func NewProcessor() *Processor {
	return &Processor{
		validator: NewValidator(),
		state:     NewState(),
	}
}

// State returns the collections built so far.
func (p *Processor) State() *State {
	return p.state
}

// Reset discards all collected entities.
func (p *Processor) Reset() {
	p.state = NewState()
}

// Process normalizes the items of one document in order. Items before a
// failing record stay committed; the returned count is how many were processed.
func (p *Processor) Process(items []models.RawItem) (int, error) {
	for i := range items {
		if err := p.ProcessItem(&items[i], i); err != nil {
			return i, err
		}
	}

	return len(items), nil
}

// ProcessItem validates a single record and merges it into the state.
func (p *Processor) ProcessItem(raw *models.RawItem, index int) error {
	if err := p.validator.Validate(raw, index); err != nil {
		return err
	}

	itemID := raw.ItemID.Value
	seller := raw.Seller.Value

	// A repeated ItemID leaves every collection untouched.
	if p.state.HasItem(itemID) {
		return nil
	}

	buyPrice := nullMarker
	if raw.BuyPrice.Present {
		buyPrice = dollarOrNull(raw.BuyPrice.Ptr())
	}

	numBids, _ := parseCount(raw.NumberOfBids.Value.String())

	p.state.addItem(models.Item{
		ItemID:       itemID,
		Name:         EscapeQuote(raw.Name.Ptr()),
		Currently:    dollarOrNull(raw.Currently.Ptr()),
		FirstBid:     dollarOrNull(raw.FirstBid.Ptr()),
		NumberOfBids: numBids,
		BuyPrice:     buyPrice,
		Started:      TransformDttm(raw.Started.Value),
		Ends:         TransformDttm(raw.Ends.Value),
		SellerID:     seller.UserID.Value,
		Description:  EscapeQuote(raw.Description.Ptr()),
	})

	// The seller's address fields live on the item record, not under Seller.
	rating, _ := parseCount(seller.Rating.Value.String())
	p.state.addUser(models.User{
		UserID:   seller.UserID.Value,
		Rating:   rating,
		Location: EscapeQuote(raw.Location.Ptr()),
		Country:  EscapeQuote(raw.Country.Ptr()),
	})

	for _, name := range raw.Category.Value {
		p.state.addCategoryMember(name, itemID)
	}

	for _, rb := range raw.Bids.Value {
		bid := rb.Bid.Value
		bidder := bid.Bidder.Value

		p.state.addBid(models.Bid{
			ItemID: itemID,
			UserID: bidder.UserID.Value,
			Time:   TransformDttm(bid.Time.Value),
			Amount: dollarOrNull(bid.Amount.Ptr()),
		})

		bidderRating, _ := parseCount(bidder.Rating.Value.String())
		p.state.addUser(models.User{
			UserID:   bidder.UserID.Value,
			Rating:   bidderRating,
			Location: EscapeQuote(bidder.Location.Ptr()),
			Country:  EscapeQuote(bidder.Country.Ptr()),
		})
	}

	return nil
}

func parseCount(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
