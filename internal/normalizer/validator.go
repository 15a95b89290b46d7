package normalizer

import (
	"errors"
	"fmt"

	"auctionload/internal/models"
)

// ErrInvalidCount is returned when a count or rating is not an integer.
var ErrInvalidCount = errors.New("value is not an integer")

// Validator checks that raw records carry every required field.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks an item record, its seller and all of its bids.
// Only Buy_Price and the bidder's Location and Country may be absent.
func (v *Validator) Validate(item *models.RawItem, index int) error {
	missing := func(record, field string) error {
		return &MissingFieldError{Record: record, Field: field, Index: index}
	}

	// Name, Description and the prices may be null; the rest must hold a value.
	switch {
	case !item.ItemID.Valid():
		return missing("Item", "ItemID")
	case !item.Name.Present:
		return missing("Item", "Name")
	case !item.Category.Present:
		return missing("Item", "Category")
	case !item.Currently.Present:
		return missing("Item", "Currently")
	case !item.FirstBid.Present:
		return missing("Item", "First_Bid")
	case !item.NumberOfBids.Valid():
		return missing("Item", "Number_of_Bids")
	case !item.Bids.Present:
		return missing("Item", "Bids")
	case !item.Location.Present:
		return missing("Item", "Location")
	case !item.Country.Present:
		return missing("Item", "Country")
	case !item.Started.Valid():
		return missing("Item", "Started")
	case !item.Ends.Valid():
		return missing("Item", "Ends")
	case !item.Seller.Valid():
		return missing("Item", "Seller")
	case !item.Description.Present:
		return missing("Item", "Description")
	}

	if err := checkCount(item.NumberOfBids.Value.String(), "Number_of_Bids", index); err != nil {
		return err
	}

	seller := item.Seller.Value

	if !seller.UserID.Valid() {
		return missing("Seller", "UserID")
	}

	if !seller.Rating.Valid() {
		return missing("Seller", "Rating")
	}

	if err := checkCount(seller.Rating.Value.String(), "Seller.Rating", index); err != nil {
		return err
	}

	for _, raw := range item.Bids.Value {
		if !raw.Bid.Valid() {
			return missing("Bids", "Bid")
		}

		bid := raw.Bid.Value

		switch {
		case !bid.Bidder.Valid():
			return missing("Bid", "Bidder")
		case !bid.Time.Valid():
			return missing("Bid", "Time")
		case !bid.Amount.Present:
			return missing("Bid", "Amount")
		case !bid.Bidder.Value.UserID.Valid():
			return missing("Bidder", "UserID")
		case !bid.Bidder.Value.Rating.Valid():
			return missing("Bidder", "Rating")
		}

		if err := checkCount(bid.Bidder.Value.Rating.Value.String(), "Bidder.Rating", index); err != nil {
			return err
		}
	}

	return nil
}

func checkCount(s, field string, index int) error {
	if _, err := parseCount(s); err != nil {
		return fmt.Errorf("%w: %s=%q at item index %d", ErrInvalidCount, field, s, index)
	}

	return nil
}
