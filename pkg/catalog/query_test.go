package catalog

import (
	"net/url"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestParseQueryDefaults(t *testing.T) {
	q := ParseQuery(url.Values{})

	if q.Page != 1 {
		t.Errorf("Page = %d, want 1", q.Page)
	}
	if q.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", q.PageSize, DefaultPageSize)
	}
	if q.MinPrice != nil || q.MaxPrice != nil || q.MinRating != nil {
		t.Errorf("numeric filters should be absent by default")
	}
	if len(q.Filter()) != 0 {
		t.Errorf("Filter() = %v, want empty", q.Filter())
	}
}

func TestParseQueryMalformedNumbersAreIgnored(t *testing.T) {
	values := url.Values{
		"minPrice":  {"abc"},
		"maxPrice":  {"500"},
		"minRating": {"x"},
		"page":      {"zero"},
		"pageSize":  {"-3"},
	}
	q := ParseQuery(values)

	if q.MinPrice != nil || q.MaxPrice != nil {
		t.Errorf("partial price pair must deactivate the filter")
	}
	if q.MinRating != nil {
		t.Errorf("malformed minRating must be treated as absent")
	}
	if q.Page != 1 {
		t.Errorf("Page = %d, want 1", q.Page)
	}
	if q.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", q.PageSize, DefaultPageSize)
	}
}

func TestFilterComposition(t *testing.T) {
	values := url.Values{
		"keyword":   {"galaxy"},
		"brand":     {"Samsung"},
		"minPrice":  {"100"},
		"maxPrice":  {"900"},
		"minRating": {"4"},
	}
	filter := ParseQuery(values).Filter()

	want := bson.M{
		"name":   bson.M{"$regex": "galaxy", "$options": "i"},
		"brand":  "Samsung",
		"price":  bson.M{"$gte": 100.0, "$lte": 900.0},
		"rating": bson.M{"$gte": 4.0},
	}
	if !reflect.DeepEqual(filter, want) {
		t.Errorf("Filter() = %v, want %v", filter, want)
	}
}

func TestFilterSubsetsAreIndependent(t *testing.T) {
	cases := []struct {
		name   string
		values url.Values
		keys   []string
	}{
		{"keyword only", url.Values{"keyword": {"pixel"}}, []string{"name"}},
		{"brand only", url.Values{"brand": {"Google"}}, []string{"brand"}},
		{"price only", url.Values{"minPrice": {"1"}, "maxPrice": {"2"}}, []string{"price"}},
		{"rating only", url.Values{"minRating": {"3"}}, []string{"rating"}},
		{"brand and rating", url.Values{"brand": {"Google"}, "minRating": {"3"}}, []string{"brand", "rating"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			filter := ParseQuery(tc.values).Filter()
			if len(filter) != len(tc.keys) {
				t.Fatalf("filter has %d clauses, want %d: %v", len(filter), len(tc.keys), filter)
			}
			for _, key := range tc.keys {
				if _, ok := filter[key]; !ok {
					t.Errorf("filter missing clause %q", key)
				}
			}
		})
	}
}

func TestSortSpec(t *testing.T) {
	cases := []struct {
		sort  string
		first bson.E
	}{
		{"price_asc", bson.E{Key: "price", Value: 1}},
		{"price_desc", bson.E{Key: "price", Value: -1}},
		{"rating", bson.E{Key: "rating", Value: -1}},
		{"newest", bson.E{Key: "createdAt", Value: -1}},
		{"", bson.E{Key: "isFeatured", Value: -1}},
		{"bogus", bson.E{Key: "isFeatured", Value: -1}},
	}

	for _, tc := range cases {
		spec := Query{Sort: tc.sort}.SortSpec()
		if len(spec) != 2 {
			t.Fatalf("sort %q: spec has %d keys, want 2", tc.sort, len(spec))
		}
		if !reflect.DeepEqual(spec[0], tc.first) {
			t.Errorf("sort %q: primary key = %v, want %v", tc.sort, spec[0], tc.first)
		}
		tieBreak := bson.E{Key: "_id", Value: 1}
		if !reflect.DeepEqual(spec[1], tieBreak) {
			t.Errorf("sort %q: tie-break = %v, want %v", tc.sort, spec[1], tieBreak)
		}
	}
}

func TestPageWindow(t *testing.T) {
	q := Query{Page: 3, PageSize: 12}
	if q.Skip() != 24 {
		t.Errorf("Skip() = %d, want 24", q.Skip())
	}
	if q.Limit() != 12 {
		t.Errorf("Limit() = %d, want 12", q.Limit())
	}
}

func TestPages(t *testing.T) {
	cases := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{25, 12, 3},
		{100, 0, 0},
	}

	for _, tc := range cases {
		if got := Pages(tc.total, tc.pageSize); got != tc.want {
			t.Errorf("Pages(%d, %d) = %d, want %d", tc.total, tc.pageSize, got, tc.want)
		}
	}
}
