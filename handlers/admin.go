package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"studio-akira-api/config"
	"studio-akira-api/middleware"
	"studio-akira-api/models"
	"studio-akira-api/statemachine"
	"studio-akira-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ── Approval workflow ────────────────────────────────────────────────────────

// ListApprovalRequests returns approval requests, pending first by default
func ListApprovalRequests(c *gin.Context) {
	var requests []models.ApprovalRequest
	query := config.DB.Order("requested_at asc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status = ?", models.ApprovalPending)
	}
	query.Find(&requests)
	c.JSON(http.StatusOK, gin.H{"count": len(requests), "requests": requests})
}

// ApproveRequest activates a pending manufacturer/delivery account and
// closes out the request. The user is notified by mail, best effort.
func ApproveRequest(c *gin.Context) {
	adminUID := middleware.GetUserUID(c)

	var request models.ApprovalRequest
	if err := config.DB.First(&request, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Approval request not found"})
		return
	}
	if request.Status != models.ApprovalPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Request already decided"})
		return
	}

	now := time.Now()
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("uid = ?", request.UserUID).
			Update("status", models.AccountActive).Error; err != nil {
			return err
		}
		return tx.Model(&request).Updates(map[string]interface{}{
			"status":     models.ApprovalApproved,
			"decided_by": adminUID,
			"decided_at": &now,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve request"})
		return
	}

	if err := utils.SendApprovalMail(request.UserEmail, request.UserName, string(request.RequestedRole)); err != nil {
		log.Println("approval: notification mail failed:", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account approved", "request_id": request.ID})
}

// RejectRequest closes a pending request without activating the account.
func RejectRequest(c *gin.Context) {
	adminUID := middleware.GetUserUID(c)

	var request models.ApprovalRequest
	if err := config.DB.First(&request, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Approval request not found"})
		return
	}
	if request.Status != models.ApprovalPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Request already decided"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&request).Updates(map[string]interface{}{
		"status":     models.ApprovalRejected,
		"decided_by": adminUID,
		"decided_at": &now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request rejected", "request_id": request.ID})
}

// ── Users & orders ───────────────────────────────────────────────────────────

// AdminGetAllUsers returns all users (admin only)
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminGetAllOrders returns all orders with a status summary and delivered
// revenue (admin only)
func AdminGetAllOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Items").Preload("Customer").Preload("StatusHistory")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerUID := c.Query("customer_uid"); customerUID != "" {
		query = query.Where("customer_uid = ?", customerUID)
	}

	query.Order("created_at desc").Find(&orders)

	summary := map[string]int{}
	var totalRevenue float64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			totalRevenue += o.TotalAmount
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary":         summary,
		"total_revenue":         totalRevenue,
		"total_revenue_display": utils.FormatPrice(totalRevenue),
		"count":                 len(orders),
		"orders":                orders,
	})
}

// AdminUpdateOrderStatus moves an order through the state machine as the
// admin actor (approve/reject/cancel pending orders).
func AdminUpdateOrderStatus(c *gin.Context) {
	adminUID := middleware.GetUserUID(c)
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
		Note   string             `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status, "admin"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	prevStatus := order.Status
	config.DB.Model(&order).Update("status", req.Status)

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   req.Status,
		ChangedBy:  adminUID,
		Note:       req.Note,
	}
	config.DB.Create(&history)

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order_id": order.ID, "status": req.Status})
}

// AdminForceOrderStatus lets admin override any order state (emergency use)
func AdminForceOrderStatus(c *gin.Context) {
	adminUID := middleware.GetUserUID(c)
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
		Reason string             `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	prevStatus := order.Status
	config.DB.Model(&order).Update("status", req.Status)

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   req.Status,
		ChangedBy:  adminUID,
		Note:       "[ADMIN OVERRIDE] " + req.Reason,
	}
	config.DB.Create(&history)

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status force-updated by admin",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"new_status":      req.Status,
	})
}

// ── Catalog management ───────────────────────────────────────────────────────

type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock"`
	IsActive    *bool    `json:"is_active"`
}

// CreateProduct adds a product to the catalog
func CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	images, _ := json.Marshal(req.Images)
	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      datatypes.JSON(images),
		Stock:       req.Stock,
		IsActive:    true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if err := config.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": product})
}

// UpdateProduct updates product details
func UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	images, _ := json.Marshal(req.Images)
	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Category = req.Category
	product.Images = datatypes.JSON(images)
	product.Stock = req.Stock
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := config.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": product})
}

// DeleteProduct removes a product from the catalog
func DeleteProduct(c *gin.Context) {
	if err := config.DB.Delete(&models.Product{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// ── Content authoring ────────────────────────────────────────────────────────

// UpsertContentDocument writes a website-content document (settings, themes,
// navigation, or a page) verbatim as JSON.
func UpsertContentDocument(c *gin.Context) {
	docID := c.Param("docId")

	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body required"})
		return
	}
	if !json.Valid(raw) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must be valid JSON"})
		return
	}

	var doc models.ContentDocument
	err = config.DB.Where("doc_id = ?", docID).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		doc = models.ContentDocument{DocID: docID, Data: datatypes.JSON(raw)}
		if err := config.DB.Create(&doc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create document"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Document created", "doc_id": docID})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load document"})
		return
	}

	if err := config.DB.Model(&doc).Update("data", datatypes.JSON(raw)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update document"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document updated", "doc_id": docID})
}
