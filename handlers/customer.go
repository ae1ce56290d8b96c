package handlers

import (
	"errors"
	"log"
	"net/http"

	"studio-akira-api/cart"
	"studio-akira-api/config"
	"studio-akira-api/middleware"
	"studio-akira-api/models"
	"studio-akira-api/statemachine"
	"studio-akira-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const fallbackProductImage = "assets/images/products/lavender-candle.png"

// ── Cart ─────────────────────────────────────────────────────────────────────

type AddToCartRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the cart entries joined against the live product catalog,
// with per-line and grand totals. Entries whose product no longer exists
// are skipped.
func GetCart(c *gin.Context) {
	uid := middleware.GetUserUID(c)
	store := cart.NewStore(config.DB)

	userCart, err := store.Load(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}

	var lines []gin.H
	var total float64
	for _, entry := range userCart.Entries() {
		var product models.Product
		if err := config.DB.First(&product, entry.ProductID).Error; err != nil {
			log.Println("cart: skipping unresolvable product", entry.ProductID)
			continue
		}
		lineTotal := product.Price * float64(entry.Quantity)
		total += lineTotal
		lines = append(lines, gin.H{
			"productId":        product.ID,
			"name":             product.Name,
			"price":            product.Price,
			"priceDisplay":     utils.FormatPrice(product.Price),
			"image":            product.PrimaryImage(fallbackProductImage),
			"quantity":         entry.Quantity,
			"lineTotal":        lineTotal,
			"lineTotalDisplay": utils.FormatPrice(lineTotal),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":      userCart.Entries(),
		"items":        lines,
		"count":        userCart.Count(),
		"total":        total,
		"totalDisplay": utils.FormatPrice(total),
	})
}

// AddToCart merges a quantity into the cart (one entry per product) and
// persists the slot.
func AddToCart(c *gin.Context) {
	uid := middleware.GetUserUID(c)
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := config.DB.First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	store := cart.NewStore(config.DB)
	userCart, err := store.Load(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	userCart.Add(req.ProductID, req.Quantity)
	if err := store.Save(uid, userCart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": product.Name + " has been added to your cart",
		"count":   userCart.Count(),
	})
}

// UpdateCartItem overwrites a line's quantity; zero or less removes it.
func UpdateCartItem(c *gin.Context) {
	uid := middleware.GetUserUID(c)
	productID, ok := paramUint(c, "productId")
	if !ok {
		return
	}
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := cart.NewStore(config.DB)
	userCart, err := store.Load(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	userCart.SetQuantity(productID, req.Quantity)
	if err := store.Save(uid, userCart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": userCart.Count()})
}

// RemoveCartItem deletes a line entirely.
func RemoveCartItem(c *gin.Context) {
	uid := middleware.GetUserUID(c)
	productID, ok := paramUint(c, "productId")
	if !ok {
		return
	}

	store := cart.NewStore(config.DB)
	userCart, err := store.Load(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	userCart.Remove(productID)
	if err := store.Save(uid, userCart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": userCart.Count()})
}

// ClearCart empties the cart.
func ClearCart(c *gin.Context) {
	uid := middleware.GetUserUID(c)
	store := cart.NewStore(config.DB)
	userCart := cart.New()
	if err := store.Save(uid, userCart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": 0})
}

// CartCount returns the badge number; visible is false at zero.
func CartCount(c *gin.Context) {
	uid := middleware.GetUserUID(c)
	store := cart.NewStore(config.DB)
	userCart, err := store.Load(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	count := userCart.Count()
	c.JSON(http.StatusOK, gin.H{"count": count, "visible": count > 0})
}

// ── Wishlist ─────────────────────────────────────────────────────────────────

// ToggleWishlist adds the product to the wishlist, or removes it if already
// present.
func ToggleWishlist(c *gin.Context) {
	uid := middleware.GetUserUID(c)
	productID, ok := paramUint(c, "productId")
	if !ok {
		return
	}

	store := cart.NewStore(config.DB)
	ids, err := store.LoadWishlist(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wishlist"})
		return
	}

	added := true
	kept := ids[:0]
	for _, id := range ids {
		if id == productID {
			added = false
			continue
		}
		kept = append(kept, id)
	}
	if added {
		kept = append(kept, productID)
	}
	if err := store.SaveWishlist(uid, kept); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save wishlist"})
		return
	}

	message := "Removed from wishlist"
	if added {
		message = "Added to wishlist"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "inWishlist": added, "wishlist": kept})
}

// GetWishlist returns the wishlisted product IDs.
func GetWishlist(c *gin.Context) {
	uid := middleware.GetUserUID(c)
	store := cart.NewStore(config.DB)
	ids, err := store.LoadWishlist(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wishlist"})
		return
	}
	if ids == nil {
		ids = []uint{}
	}
	c.JSON(http.StatusOK, gin.H{"wishlist": ids})
}

// ── Orders ───────────────────────────────────────────────────────────────────

type CheckoutRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	Address       string `json:"address" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

var (
	errEmptyCart       = errors.New("cart is empty")
	errNothingResolved = errors.New("none of the cart items are available")
)

// derivePaymentStatus is the placeholder payment policy: cash on delivery
// stays pending, any other method is recorded completed.
func derivePaymentStatus(method string) models.PaymentStatus {
	if method == "cod" {
		return models.PaymentPending
	}
	return models.PaymentCompleted
}

// assembleOrder joins cart entries against the catalog, snapshotting name,
// price, and image per line. Entries whose product no longer exists are
// skipped with a log. It does not touch the cart; callers clear it only
// after the order write succeeds.
func assembleOrder(db *gorm.DB, uid string, req CheckoutRequest, entries []cart.Entry) (*models.Order, error) {
	if len(entries) == 0 {
		return nil, errEmptyCart
	}

	var items []models.OrderItem
	var total float64
	for _, entry := range entries {
		var product models.Product
		if err := db.First(&product, entry.ProductID).Error; err != nil {
			log.Println("order: skipping unresolvable product", entry.ProductID)
			continue
		}
		total += product.Price * float64(entry.Quantity)
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    entry.Quantity,
			Price:       product.Price,
			Image:       product.PrimaryImage(fallbackProductImage),
			Description: product.Description,
		})
	}
	if len(items) == 0 {
		return nil, errNothingResolved
	}

	return &models.Order{
		OrderNumber: utils.GenerateOrderID(),
		CustomerUID: uid,
		CustomerDetails: datatypes.NewJSONType(models.CustomerDetails{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		}),
		Items:         items,
		TotalAmount:   total,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: derivePaymentStatus(req.PaymentMethod),
		Status:        models.StatusPending,
	}, nil
}

// PlaceOrder assembles and writes an order from the current cart, clearing
// the cart only on a successful write. An empty cart fails fast before any
// catalog access.
func PlaceOrder(c *gin.Context) {
	uid := middleware.GetUserUID(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := cart.NewStore(config.DB)
	userCart, err := store.Load(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	if userCart.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	order, err := assembleOrder(config.DB, uid, req, userCart.Entries())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(order).Error; err != nil {
		// Cart left intact so the customer can retry.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	history := models.OrderStatusHistory{
		OrderID:   order.ID,
		ToStatus:  models.StatusPending,
		ChangedBy: uid,
		Note:      "Order placed by customer",
	}
	config.DB.Create(&history)

	userCart.Clear()
	if err := store.Save(uid, userCart); err != nil {
		log.Println("order: failed to clear cart after order", order.OrderNumber+":", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Order placed successfully!",
		"order":        order,
		"totalDisplay": utils.FormatPrice(order.TotalAmount),
		"redirect":     "orders.html",
	})
}

// GetMyOrders returns all orders for the logged-in customer
func GetMyOrders(c *gin.Context) {
	uid := middleware.GetUserUID(c)
	var orders []models.Order
	config.DB.Preload("Items").
		Where("customer_uid = ?", uid).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order's full detail with history
func GetOrderDetail(c *gin.Context) {
	uid := middleware.GetUserUID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.
		Preload("Items").
		Preload("StatusHistory").
		First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerUID != uid {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":       order,
		"statusLabel": utils.StatusLabel(string(order.Status)),
	})
}

// CancelOrder cancels an order while it is still pending
func CancelOrder(c *gin.Context) {
	uid := middleware.GetUserUID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerUID != uid {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, "customer"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel order",
			"reason":        err.Error(),
			"current_state": order.Status,
		})
		return
	}

	prevStatus := order.Status
	config.DB.Model(&order).Update("status", models.StatusCancelled)

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   models.StatusCancelled,
		ChangedBy:  uid,
		Note:       "Order cancelled by customer",
	}
	config.DB.Create(&history)

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}
