package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-catalog/internal/models"
)

// SearchQuery acumula los filtros opcionales de la búsqueda.
// Se traduce a un filtro de MongoDB recién al ejecutar la consulta.
type SearchQuery struct {
	Name     *string
	Category *string
	Price    *models.PriceRange
	Sort     models.SearchSort
	Page     int
	PageSize int
}

// Filter construye el filtro de MongoDB
func (q SearchQuery) Filter() bson.M {
	filter := bson.M{}

	if q.Name != nil && *q.Name != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(*q.Name), Options: "i"}
	}

	if q.Category != nil && *q.Category != "" {
		filter["category"] = models.NormalizeCategory(*q.Category)
	}

	if q.Price != nil {
		price := bson.M{}
		if q.Price.Min != nil {
			price["$gte"] = *q.Price.Min
		}
		if q.Price.Max != nil {
			price["$lte"] = *q.Price.Max
		}
		if len(price) > 0 {
			filter["price"] = price
		}
	}

	return filter
}

// SortSpec devuelve nil para "relevance": orden natural del store
func (q SearchQuery) SortSpec() bson.D {
	switch q.Sort {
	case models.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case models.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	default:
		return nil
	}
}

func (q SearchQuery) FindOptions() *options.FindOptions {
	return pageOptions(q.Page, q.PageSize, q.SortSpec())
}

// ListSort traduce el descriptor de GET /products
func ListSort(s models.SortBy) bson.D {
	if s.ID == "" {
		return nil
	}
	order := 1
	if s.Desc {
		order = -1
	}
	return bson.D{{Key: s.ID, Value: order}}
}

func pageOptions(page, pageSize int, sort bson.D) *options.FindOptions {
	opts := options.Find().
		SetSkip(models.Skip(page, pageSize)).
		SetLimit(int64(pageSize))
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	return opts
}
