package handler

import (
	"strconv"
	"time"

	"go-commerce-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

type createSaleRequest struct {
	CustomerID *uuid.UUID              `json:"customer_id"`
	SaleDate   *time.Time              `json:"sale_date"`
	Items      []service.SaleItemInput `json:"items"`
}

type createPurchaseRequest struct {
	ProductID    uuid.UUID  `json:"product_id"`
	Quantity     int        `json:"quantity"`
	CostPerUnit  float64    `json:"cost_per_unit"`
	Supplier     *string    `json:"supplier"`
	PurchaseDate *time.Time `json:"purchase_date"`
}

func (h *SalesHandler) CreateSale(c *fiber.Ctx) error {
	var req createSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	saleID, err := h.service.AddSale(req.Items, req.CustomerID, req.SaleDate)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "sale_id": saleID})
}

func (h *SalesHandler) CreatePurchase(c *fiber.Ctx) error {
	var req createPurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	purchaseID, err := h.service.AddPurchase(req.ProductID, req.Quantity, req.CostPerUnit, req.Supplier, req.PurchaseDate)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Purchase recorded", "purchase_id": purchaseID})
}

// limitQuery reads the optional ?limit= param, default 100.
func limitQuery(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit", "100"))
	if err != nil || limit <= 0 {
		return 100
	}
	return limit
}

func (h *SalesHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.SalesHistory(limitQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sales)
}

func (h *SalesHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.service.GetSale(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sale)
}

func (h *SalesHandler) GetSaleItems(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	items, err := h.service.SaleItems(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

func (h *SalesHandler) GetCustomerSales(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	sales, err := h.service.SalesByCustomer(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sales)
}

func (h *SalesHandler) GetPurchases(c *fiber.Ctx) error {
	purchases, err := h.service.PurchaseHistory(limitQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(purchases)
}
