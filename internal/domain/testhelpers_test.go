package domain

import "testing"

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]Product{
		{ID: "tee", Name: "Cotton Tee", Description: "Soft everyday shirt", Tag: "apparel", Price: 2500, Icon: "👕"},
		{ID: "mug", Name: "apple Mug", Description: "Stoneware mug", Tag: "kitchen", Price: 1200, Icon: "☕"},
		{ID: "cap", Name: "Baseball Cap", Description: "Adjustable", Tag: "apparel", Price: 1200, Icon: "🧢"},
		{ID: "pen", Name: "pen", Description: "Gel ink", Tag: "stationery", Price: 300, Icon: "🖊"},
	})
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	return c
}
