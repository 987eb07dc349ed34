package catalog

import (
	"net/url"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultPageSize = 12
	maxPageSize     = 100
)

// Query is a parsed catalog query: optional conjunctive filters, a sort
// key and a page window.
type Query struct {
	Keyword   string
	Brand     string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Sort      string
	Page      int
	PageSize  int
}

// ParseQuery reads catalog query parameters. Malformed numeric values are
// treated as absent rather than rejected, so a bad filter never makes the
// catalog unbrowsable.
func ParseQuery(values url.Values) Query {
	q := Query{
		Keyword:  values.Get("keyword"),
		Brand:    values.Get("brand"),
		Sort:     values.Get("sort"),
		Page:     1,
		PageSize: DefaultPageSize,
	}

	// The price window only activates when both bounds parse.
	minPrice, minOK := parseFloat(values.Get("minPrice"))
	maxPrice, maxOK := parseFloat(values.Get("maxPrice"))
	if minOK && maxOK {
		q.MinPrice = &minPrice
		q.MaxPrice = &maxPrice
	}

	if rating, ok := parseFloat(values.Get("minRating")); ok {
		q.MinRating = &rating
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page >= 1 {
		q.Page = page
	}
	if size, err := strconv.Atoi(values.Get("pageSize")); err == nil && size >= 1 && size <= maxPageSize {
		q.PageSize = size
	}

	return q
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Filter builds the conjunctive mongo filter for the active sub-filters.
func (q Query) Filter() bson.M {
	filter := bson.M{}

	if q.Keyword != "" {
		filter["name"] = bson.M{"$regex": q.Keyword, "$options": "i"}
	}
	if q.Brand != "" {
		filter["brand"] = q.Brand
	}
	if q.MinPrice != nil && q.MaxPrice != nil {
		filter["price"] = bson.M{"$gte": *q.MinPrice, "$lte": *q.MaxPrice}
	}
	if q.MinRating != nil {
		filter["rating"] = bson.M{"$gte": *q.MinRating}
	}

	return filter
}

// SortSpec maps the sort key onto a mongo sort order. Every spec carries
// an _id tie-break so pagination is stable across repeated calls.
func (q Query) SortSpec() bson.D {
	var sort bson.D
	switch q.Sort {
	case "price_asc":
		sort = bson.D{{Key: "price", Value: 1}}
	case "price_desc":
		sort = bson.D{{Key: "price", Value: -1}}
	case "rating":
		sort = bson.D{{Key: "rating", Value: -1}}
	case "newest":
		sort = bson.D{{Key: "createdAt", Value: -1}}
	default:
		sort = bson.D{{Key: "isFeatured", Value: -1}}
	}
	return append(sort, bson.E{Key: "_id", Value: 1})
}

func (q Query) Skip() int64 {
	return int64(q.PageSize) * int64(q.Page-1)
}

func (q Query) Limit() int64 {
	return int64(q.PageSize)
}

// Pages returns the page count for a total, never less than zero.
func Pages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		pages++
	}
	return int(pages)
}
