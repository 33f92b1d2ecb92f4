package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"storefront-catalog/internal/models"
)

// ErrNotFound se devuelve cuando el id no corresponde a ningún producto.
var ErrNotFound = errors.New("product not found")

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(collection *mongo.Collection) *ProductRepository {
	return &ProductRepository{
		collection: collection,
	}
}

// Create inserta el producto y completa ID y timestamps
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now().UTC()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// FindByID obtiene un producto por ID. Un ID mal formado es ErrNotFound.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var product models.Product
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}

	return &product, nil
}

// Latest devuelve los n productos más recientes
func (r *ProductRepository) Latest(ctx context.Context, n int) ([]models.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(n))
	return r.find(ctx, bson.M{}, opts)
}

// Featured devuelve todos los productos destacados, sin paginar
func (r *ProductRepository) Featured(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{"featured": true}, options.Find())
}

// Categories devuelve las categorías distintas, ordenadas
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// List pagina todo el catálogo con orden opcional
func (r *ProductRepository) List(ctx context.Context, page, pageSize int, sortBy models.SortBy) (models.Page, error) {
	return r.page(ctx, bson.M{}, pageOptions(page, pageSize, ListSort(sortBy)))
}

// Search ejecuta la búsqueda filtrada y paginada
func (r *ProductRepository) Search(ctx context.Context, q SearchQuery) (models.Page, error) {
	return r.page(ctx, q.Filter(), q.FindOptions())
}

// Save persiste los campos editables del producto
func (r *ProductRepository) Save(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"name":          product.Name,
			"category":      product.Category,
			"description":   product.Description,
			"price":         product.Price,
			"stock":         product.Stock,
			"photo":         product.Photo,
			"photoPublicId": product.PhotoPublicID,
			"updatedAt":     product.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": product.ID}, update)
	if err != nil {
		return fmt.Errorf("update product %s: %w", product.ID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleFeatured invierte featured en una sola operación atómica
// y devuelve el documento actualizado.
func (r *ProductRepository) ToggleFeatured(ctx context.Context, id string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "featured", Value: bson.D{{Key: "$not", Value: bson.A{"$featured"}}}},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("toggle featured %s: %w", id, err)
	}
	return &product, nil
}

// Delete borra físicamente el producto
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// page cuenta y busca en paralelo; ambas lecturas son independientes
func (r *ProductRepository) page(ctx context.Context, filter bson.M, opts *options.FindOptions) (models.Page, error) {
	var (
		products []models.Product
		total    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = r.collection.CountDocuments(gctx, filter)
		if err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		products, err = r.find(gctx, filter, opts)
		return err
	})

	if err := g.Wait(); err != nil {
		return models.Page{}, err
	}
	return models.Page{Products: products, Total: total}, nil
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err = cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}
