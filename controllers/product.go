// controllers/product.go
package controllers

import (
	"errors"
	"net/http"

	"salonpro-dashboard/config"
	"salonpro-dashboard/models"
	"salonpro-dashboard/services"
	"salonpro-dashboard/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductController struct {
	Backend *services.BackendClient
}

func (pc *ProductController) stock() *services.ProductStockStore {
	return &services.ProductStockStore{DB: config.DB}
}

func (pc *ProductController) ListProducts(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	visibility := c.Query("visibility")
	if visibility != "" && visibility != "visible" && visibility != "hidden" {
		utils.RespondWithError(c, http.StatusBadRequest, "visibility must be 'visible' or 'hidden'")
		return
	}

	products, err := pc.Backend.ListProducts(c.Request.Context(), utils.BackendToken(c), salonID)
	if err != nil {
		respondBackendError(c, err, "Failed to retrieve products")
		return
	}
	views, err := pc.stock().Views(salonID, products)
	if err != nil {
		zap.S().Errorf("product stock for salon %s: %v", salonID, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load product stock")
		return
	}

	filtered := utils.FilterProducts(views, c.Query("q"), visibility)
	c.JSON(http.StatusOK, gin.H{"products": filtered, "total": len(filtered)})
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	body := gin.H{
		"salonId":     salonID,
		"title":       input.Title,
		"description": input.Description,
		"price":       input.Price,
		"quantity":    input.Quantity,
		"category":    input.Category,
	}
	product, err := pc.Backend.CreateProduct(c.Request.Context(), utils.BackendToken(c), body)
	if err != nil {
		respondBackendError(c, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, pc.view(salonID, product))
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	var input models.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	product, err := pc.Backend.UpdateProduct(c.Request.Context(), utils.BackendToken(c), c.Param("id"), input)
	if err != nil {
		respondBackendError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, pc.view(salonID, product))
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	productID := c.Param("id")
	if err := pc.Backend.DeleteProduct(c.Request.Context(), utils.BackendToken(c), productID); err != nil {
		respondBackendError(c, err, "Failed to delete product")
		return
	}
	if err := pc.stock().Forget(productID); err != nil {
		zap.S().Warnf("forget stock of deleted product %s: %v", productID, err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// ToggleVisibility hides a visible product by zeroing its quantity, or shows
// a hidden one again with its last non-zero quantity.
func (pc *ProductController) ToggleVisibility(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	token := utils.BackendToken(c)
	productID := c.Param("id")

	list, err := pc.Backend.ListProducts(ctx, token, salonID)
	if err != nil {
		respondBackendError(c, err, "Failed to retrieve products")
		return
	}
	var product *models.Product
	for i := range list {
		if list[i].ID == productID {
			product = &list[i]
			break
		}
	}
	if product == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		return
	}

	store := pc.stock()
	views, err := store.Views(salonID, []models.Product{*product})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load product stock")
		return
	}

	quantity, err := services.ToggledQuantity(views[0])
	if err != nil {
		if errors.Is(err, services.ErrNoPreviousStock) {
			utils.RespondWithError(c, http.StatusConflict, "No previous stock recorded for this product")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	updated, err := pc.Backend.UpdateProduct(ctx, token, product.ID, gin.H{"quantity": quantity})
	if err != nil {
		respondBackendError(c, err, "Failed to update product visibility")
		return
	}
	view := services.NewProductView(*updated, views[0].OriginalStock)
	c.JSON(http.StatusOK, view)
}

func (pc *ProductController) view(salonID string, product *models.Product) models.ProductView {
	views, err := pc.stock().Views(salonID, []models.Product{*product})
	if err != nil {
		zap.S().Warnf("product stock for %s: %v", product.ID, err)
		return services.NewProductView(*product, 0)
	}
	return views[0]
}
