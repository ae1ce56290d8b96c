package handlers

import (
	"net/http"

	"studio-akira-api/config"
	"studio-akira-api/middleware"
	"studio-akira-api/models"
	"studio-akira-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetAvailableShipments shows packaged orders with no delivery agent assigned
func GetAvailableShipments(c *gin.Context) {
	var orders []models.Order
	config.DB.Preload("Items").
		Where("status = ? AND delivery_uid IS NULL", models.StatusPackaged).
		Order("created_at asc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetMyShipments returns all orders assigned to the logged-in delivery agent
func GetMyShipments(c *gin.Context) {
	deliveryUID := middleware.GetUserUID(c)
	var orders []models.Order
	config.DB.Preload("Items").Preload("Customer").
		Where("delivery_uid = ?", deliveryUID).
		Order("updated_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// ShipOrder assigns the order to the delivery agent and transitions
// packaged to shipped
func ShipOrder(c *gin.Context) {
	deliveryUID := middleware.GetUserUID(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	// Prevent two agents claiming the same shipment
	if order.DeliveryUID != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Order has already been claimed by another delivery agent"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusShipped, "delivery"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	prevStatus := order.Status
	config.DB.Model(&order).Updates(map[string]interface{}{
		"status":       models.StatusShipped,
		"delivery_uid": deliveryUID,
	})

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   models.StatusShipped,
		ChangedBy:  deliveryUID,
		Note:       "Shipment picked up",
	}
	config.DB.Create(&history)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Order shipped",
		"order_id": order.ID,
		"status":   models.StatusShipped,
	})
}

// DeliverOrder transitions shipped to delivered
func DeliverOrder(c *gin.Context) {
	deliveryUID := middleware.GetUserUID(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.DeliveryUID == nil || *order.DeliveryUID != deliveryUID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the assigned delivery agent for this order"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusDelivered, "delivery"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Invalid state transition",
			"current_status": order.Status,
			"reason":         err.Error(),
		})
		return
	}

	prevStatus := order.Status
	config.DB.Model(&order).Update("status", models.StatusDelivered)

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   models.StatusDelivered,
		ChangedBy:  deliveryUID,
		Note:       "Order delivered to customer",
	}
	config.DB.Create(&history)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Order delivered successfully",
		"order_id": order.ID,
		"status":   models.StatusDelivered,
	})
}
