package models

import "encoding/json"

// RawItem is one item record as it appears in a listing file.
// Location and Country describe the seller even though they sit on the item.
type RawItem struct {
	ItemID       Field[string]      `json:"ItemID"`
	Name         Field[string]      `json:"Name"`
	Category     Field[[]string]    `json:"Category"`
	Currently    Field[string]      `json:"Currently"`
	FirstBid     Field[string]      `json:"First_Bid"`
	BuyPrice     Field[string]      `json:"Buy_Price"`
	NumberOfBids Field[json.Number] `json:"Number_of_Bids"`
	Bids         Field[[]RawBid]    `json:"Bids"`
	Location     Field[string]      `json:"Location"`
	Country      Field[string]      `json:"Country"`
	Started      Field[string]      `json:"Started"`
	Ends         Field[string]      `json:"Ends"`
	Seller       Field[RawSeller]   `json:"Seller"`
	Description  Field[string]      `json:"Description"`
}

// RawSeller is the Seller sub-record of an item.
type RawSeller struct {
	UserID Field[string]      `json:"UserID"`
	Rating Field[json.Number] `json:"Rating"`
}

// RawBid wraps a single bid; the source nests it under a "Bid" key.
type RawBid struct {
	Bid Field[RawBidDetail] `json:"Bid"`
}

// RawBidDetail holds the fields of one bid.
type RawBidDetail struct {
	Bidder Field[RawBidder] `json:"Bidder"`
	Time   Field[string]    `json:"Time"`
	Amount Field[string]    `json:"Amount"`
}

// RawBidder is the bidder sub-record of a bid. Location and Country are optional.
type RawBidder struct {
	UserID   Field[string]      `json:"UserID"`
	Rating   Field[json.Number] `json:"Rating"`
	Location Field[string]      `json:"Location"`
	Country  Field[string]      `json:"Country"`
}
