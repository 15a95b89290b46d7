package models

// NullMarker is the unquoted literal written for absent or null values.
const NullMarker = "NULL"

// Relation names, in the order they are handed to a sink.
const (
	RelationItems      = "items"
	RelationUsers      = "users"
	RelationCategories = "categories"
	RelationBids       = "bids"
)

// Column lists per relation.
var (
	ItemColumns = []string{
		"ItemID", "Name", "Currently", "First_Bid", "Number_of_Bids",
		"Buy_Price", "Started", "Ends", "UserID", "Description",
	}
	UserColumns     = []string{"UserID", "Rating", "Location", "Country"}
	CategoryColumns = []string{"ItemID", "Category"}
	BidColumns      = []string{"ItemID", "UserID", "Time", "Amount"}
)

// Item is a normalized auction item. String fields hold their
// already-transformed output form.
type Item struct {
	ItemID       string
	Name         string
	Currently    string
	FirstBid     string
	NumberOfBids int64
	BuyPrice     string
	Started      string
	Ends         string
	SellerID     string
	Description  string
}

// User is a seller or bidder. UserID is kept raw because it is the identity
// key; it is escaped when the relation is flattened.
type User struct {
	UserID   string
	Rating   int64
	Location string
	Country  string
}

// Category groups the items listed under one category name.
type Category struct {
	Name  string
	Items []string
}

// Bid is one bid occurrence.
type Bid struct {
	ItemID string
	UserID string
	Time   string
	Amount string
}

// Relation is a flattened output table.
type Relation struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Len returns the number of rows.
func (r Relation) Len() int {
	return len(r.Rows)
}
