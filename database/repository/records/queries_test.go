package recordsRepo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilterSearch(t *testing.T) {
	f := BuildFilter(ListOptions{
		Filter:       bson.M{"status": "active"},
		Search:       " a.b ",
		SearchFields: []string{"name", "email"},
	})
	if f["status"] != "active" {
		t.Fatalf("equality filter lost: %v", f)
	}
	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected two search clauses, got %v", f["$or"])
	}
	clause := or[0].(bson.M)["name"].(bson.M)
	if clause["$regex"] != `a\.b` || clause["$options"] != "i" {
		t.Fatalf("unexpected regex clause %v", clause)
	}
}

func TestBuildFilterNoSearch(t *testing.T) {
	src := bson.M{"type": "service"}
	f := BuildFilter(ListOptions{Filter: src, SearchFields: []string{"name"}})
	if _, ok := f["$or"]; ok {
		t.Fatalf("blank search must not add $or")
	}
	f["x"] = 1
	if _, ok := src["x"]; ok {
		t.Fatalf("BuildFilter must not alias the caller's filter")
	}
}

func TestSetDocDropsCreatedAt(t *testing.T) {
	type doc struct {
		ID        string `bson:"id"`
		CreatedAt int    `bson:"createdAt"`
		Name      string `bson:"name"`
	}
	set, err := SetDoc(doc{ID: "1", CreatedAt: 5, Name: "x"})
	if err != nil {
		t.Fatalf("SetDoc: %v", err)
	}
	if _, ok := set["createdAt"]; ok {
		t.Fatalf("createdAt should be dropped: %v", set)
	}
	if set["name"] != "x" {
		t.Fatalf("unexpected doc %v", set)
	}
}
