package models

import (
	"encoding/json"
	"testing"
)

func TestField_UnmarshalJSON(t *testing.T) {
	var item RawItem

	data := `{"ItemID": "1", "Buy_Price": null, "Number_of_Bids": "3", "Seller": {"Rating": 7}}`
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if !item.ItemID.Valid() || item.ItemID.Value != "1" {
		t.Errorf("ItemID = %+v, want valid 1", item.ItemID)
	}

	if !item.BuyPrice.Present || !item.BuyPrice.Null || item.BuyPrice.Ptr() != nil {
		t.Errorf("BuyPrice = %+v, want present null", item.BuyPrice)
	}

	if item.Name.Present {
		t.Error("Name should be absent")
	}

	if item.NumberOfBids.Value.String() != "3" {
		t.Errorf("Number_of_Bids = %s, want 3", item.NumberOfBids.Value)
	}

	if item.Seller.Value.Rating.Value.String() != "7" {
		t.Errorf("Rating = %s, want 7", item.Seller.Value.Rating.Value)
	}

	if item.Seller.Value.UserID.Present {
		t.Error("Seller.UserID should be absent")
	}
}

func TestField_Helpers(t *testing.T) {
	f := Set("x")
	if p := f.Ptr(); p == nil || *p != "x" {
		t.Errorf("Set(x).Ptr() = %v", p)
	}

	n := Null[string]()
	if n.Valid() || !n.Present {
		t.Errorf("Null() = %+v", n)
	}
}
