package handlers

import (
	"net/http"

	"studio-akira-api/config"
	"studio-akira-api/middleware"
	"studio-akira-api/models"
	"studio-akira-api/statemachine"
	"studio-akira-api/utils"

	"github.com/gin-gonic/gin"
)

// GetProductionOrders returns orders in the manufacturer's working set:
// approved and in-progress production states.
func GetProductionOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Items").
		Where("status IN ?", []models.OrderStatus{
			models.StatusApproved,
			models.StatusInProduction,
			models.StatusReadyForPackaging,
		})
	if status := c.Query("status"); status != "" {
		query = config.DB.Preload("Items").Where("status = ?", status)
	}
	query.Order("created_at asc").Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// UpdateProductionStatus moves an order along the production chain. Entering
// production assigns a batch number if the order has none yet.
func UpdateProductionStatus(c *gin.Context) {
	manufacturerUID := middleware.GetUserUID(c)

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

	if err := statemachine.CanTransition(order.Status, req.Status, "manufacturer"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status == models.StatusInProduction && order.BatchNumber == "" {
		updates["batch_number"] = utils.GenerateBatchNumber()
	}

	prevStatus := order.Status
	config.DB.Model(&order).Updates(updates)

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   req.Status,
		ChangedBy:  manufacturerUID,
		Note:       req.Note,
	}
	config.DB.Create(&history)

	c.JSON(http.StatusOK, gin.H{
		"message":      "Order status updated",
		"order_id":     order.ID,
		"status":       req.Status,
		"batch_number": order.BatchNumber,
	})
}
