package handler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zymoune/feedstore-api/internal/application/service"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"github.com/zymoune/feedstore-api/internal/domain/repository"
	"github.com/zymoune/feedstore-api/internal/presentation/http/dto/request"
	"github.com/zymoune/feedstore-api/internal/presentation/http/dto/response"
	"github.com/zymoune/feedstore-api/pkg/pagination"
)

// allowed image extensions for product uploads
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
	uploadPath     string
	uploadMaxSize  int64
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService, uploadPath string, uploadMaxSize int64) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		uploadPath:     uploadPath,
		uploadMaxSize:  uploadMaxSize,
	}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:     filter.Search,
		ActiveOnly: filter.ActiveOnly,
		LowStock:   filter.LowStock,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}

	if filter.AnimalType != "" {
		animalType := enum.AnimalType(filter.AnimalType)
		params.AnimalType = &animalType
	}
	if filter.Category != "" {
		category := enum.ProductCategory(filter.Category)
		params.Category = &category
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// ListShop handles the public catalog of active products
func (h *ProductHandler) ListShop(c *gin.Context) {
	products, err := h.productService.ListActiveProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", products)
}

// Get handles retrieving a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CreateProductInput{
		Name:             req.Name,
		AnimalType:       enum.AnimalType(req.AnimalType),
		Category:         enum.ProductCategory(req.Category),
		Description:      req.Description,
		PricePerSack:     req.PricePerSack,
		PricePerKilo:     req.PricePerKilo,
		PricePerHalfKilo: req.PricePerHalfKilo,
		Price:            req.Price,
		CostPerSack:      req.CostPerSack,
		Cost:             req.Cost,
		StockSacks:       req.StockSacks,
		Stock:            req.Stock,
		MaxStock:         req.MaxStock,
		NetWeightPerSack: req.NetWeightPerSack,
		IsActive:         req.IsActive,
		IsFeatured:       req.IsFeatured,
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateProductInput{
		ProductID:        id,
		Name:             req.Name,
		Description:      req.Description,
		PricePerSack:     req.PricePerSack,
		PricePerKilo:     req.PricePerKilo,
		PricePerHalfKilo: req.PricePerHalfKilo,
		Price:            req.Price,
		CostPerSack:      req.CostPerSack,
		Cost:             req.Cost,
		StockSacks:       req.StockSacks,
		Stock:            req.Stock,
		MaxStock:         req.MaxStock,
		NetWeightPerSack: req.NetWeightPerSack,
		IsActive:         req.IsActive,
		IsFeatured:       req.IsFeatured,
	}
	if req.AnimalType != nil {
		animalType := enum.AnimalType(*req.AnimalType)
		input.AnimalType = &animalType
	}
	if req.Category != nil {
		category := enum.ProductCategory(*req.Category)
		input.Category = &category
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}

// LowStock handles listing products at or below their low-stock threshold
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.GetLowStockProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// BulkUpdateCosts handles updating cost fields for many products at once
func (h *ProductHandler) BulkUpdateCosts(c *gin.Context) {
	var req request.BulkCostUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]service.BulkCostItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.BulkCostItem{
			ProductID:   item.ProductID,
			CostPerSack: item.CostPerSack,
			Cost:        item.Cost,
		})
	}

	result, err := h.productService.BulkUpdateCosts(c.Request.Context(), items)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Costs updated", result)
}

// UploadImage handles a multipart product image upload
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Image file is required")
		return
	}
	if h.uploadMaxSize > 0 && file.Size > h.uploadMaxSize {
		response.BadRequest(c, "Image exceeds the maximum allowed size")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		response.BadRequest(c, "Image must be a jpg, png or webp file")
		return
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	dst := filepath.Join(h.uploadPath, "products", filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		response.InternalServerError(c, "Failed to store image")
		return
	}

	imagePath := "/uploads/products/" + filename
	product, err := h.productService.SetProductImage(c.Request.Context(), id, imagePath)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Image uploaded successfully", product)
}
