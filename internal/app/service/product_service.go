package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/simple-shop/internal/app/dto"
	"github.com/mrops-br/simple-shop/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ProductService serves catalog reads
type ProductService struct {
	catalog           *domain.Catalog
	tracer            trace.Tracer
	logger            *slog.Logger
	productOperations metric.Int64Counter
}

// NewProductService creates a new product service
func NewProductService(
	settings domain.Settings,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	productOperations, _ := meter.Int64Counter(
		"products.operations",
		metric.WithDescription("Total number of product operations"),
	)

	return &ProductService{
		catalog:           settings.Catalog,
		tracer:            tracer,
		logger:            logger,
		productOperations: productOperations,
	}
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	product, ok := s.catalog.Lookup(id)
	if !ok {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", id),
		)
		s.productOperations.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("operation", "read"),
				attribute.String("result", "not_found"),
			),
		)
		return nil, domain.ErrProductNotFound
	}

	s.productOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", "read"),
			attribute.String("result", "success"),
		),
	)

	span.SetStatus(codes.Ok, "Product retrieved successfully")
	return dto.ToProductResponse(product), nil
}

// ListProducts filters the catalog by a free-text query and sorts it by the
// raw sort key. Unknown sort keys keep catalog order.
func (s *ProductService) ListProducts(ctx context.Context, query, sortKey string) []*dto.ProductResponse {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListProducts")
	defer span.End()

	mode := domain.ParseSortMode(sortKey)
	products := s.catalog.Query(query, mode)

	span.SetAttributes(
		attribute.String("catalog.query", query),
		attribute.String("catalog.sort", string(mode)),
		attribute.Int("product.count", len(products)),
	)

	s.productOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", "list"),
			attribute.String("result", "success"),
		),
	)

	s.logger.DebugContext(ctx, "Products listed",
		slog.String("query", query),
		slog.String("sort", string(mode)),
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products listed successfully")
	return dto.ToProductResponseList(products)
}
