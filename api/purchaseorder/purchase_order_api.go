package purchaseorder

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"procurement.GO/api"
	"procurement.GO/core/auth"
	poEntity "procurement.GO/model/entity/purchaseorder"
	poService "procurement.GO/service/purchaseorder"
)

func init() {
	api.RegisterModule(RegisterPurchaseOrderRoutes)
}

type handler struct {
	svc *poService.Service
	log *zap.Logger
}

// RegisterPurchaseOrderRoutes mounts /purchase-orders on the /api group.
func RegisterPurchaseOrderRoutes(apiGroup *echo.Group, deps *api.Deps) {
	h := &handler{svc: deps.PurchaseOrders, log: deps.Log}
	g := apiGroup.Group("/purchase-orders")

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.POST("/:id/receive", h.receive)
	g.GET("/:id/receipts", h.receipts)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
}

type createRequest struct {
	OrganizationID     uint             `json:"organizationId"`
	SupplierID         uint             `json:"supplierId"`
	OrderDate          *string          `json:"orderDate"`
	ExpectedDate       *string          `json:"expectedDate"`
	ReceivedDate       *string          `json:"receivedDate"`
	Remarks            *string          `json:"remarks"`
	TotalAmount        *decimal.Decimal `json:"totalAmount"`
	PurchaseOrderItems json.RawMessage  `json:"purchaseOrderItems"`
}

const itemsArrayMessage = "purchaseOrderItems must be a non-empty array"

// POST /api/purchase-orders
func (h *handler) create(c echo.Context) error {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		return api.Unauthorized(c)
	}
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	raw := bytes.TrimSpace(req.PurchaseOrderItems)
	if len(raw) == 0 || raw[0] != '[' {
		return badRequest(c, itemsArrayMessage)
	}
	var lines []poService.LineInput
	if err := json.Unmarshal(raw, &lines); err != nil {
		return badRequest(c, "Invalid purchaseOrderItems")
	}

	in := poService.CreateInput{
		OrganizationID:     req.OrganizationID,
		SupplierID:         req.SupplierID,
		Remarks:            req.Remarks,
		TotalAmount:        req.TotalAmount,
		PurchaseOrderItems: lines,
	}
	var err error
	if in.OrderDate, err = api.ParseDate("orderDate", req.OrderDate); err != nil {
		return badRequest(c, err.Error())
	}
	if in.ExpectedDate, err = api.ParseDate("expectedDate", req.ExpectedDate); err != nil {
		return badRequest(c, err.Error())
	}
	if in.ReceivedDate, err = api.ParseDate("receivedDate", req.ReceivedDate); err != nil {
		return badRequest(c, err.Error())
	}

	po, err := h.svc.Create(c.Request().Context(), p, in)
	if err != nil {
		return api.Error(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":       "Purchase order created successfully",
		"purchaseOrder": po,
	})
}

// GET /api/purchase-orders?organizationId=&status=
func (h *handler) list(c echo.Context) error {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		return api.Unauthorized(c)
	}
	orgID, err := api.ParseOptionalUint(c, "organizationId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	orders, err := h.svc.List(c.Request().Context(), p, poService.ListInput{
		OrganizationID: orgID,
		Status:         c.QueryParam("status"),
	})
	if err != nil {
		return api.Error(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "Purchase orders retrieved successfully",
		"purchaseOrders": orders,
	})
}

// GET /api/purchase-orders/:id
func (h *handler) get(c echo.Context) error {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		return api.Unauthorized(c)
	}
	id, err := api.ParseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid purchase order ID")
	}
	po, err := h.svc.Get(c.Request().Context(), p, id)
	if err != nil {
		return api.Error(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Purchase order retrieved successfully",
		"purchaseOrder": po,
	})
}

type updateRequest struct {
	Status       *string          `json:"status"`
	ExpectedDate *string          `json:"expectedDate"`
	ReceivedDate *string          `json:"receivedDate"`
	UpdatedBy    *uint            `json:"updatedBy"`
	TotalAmount  *decimal.Decimal `json:"totalAmount"`
	Remarks      *string          `json:"remarks"`
}

// PUT /api/purchase-orders/:id
func (h *handler) update(c echo.Context) error {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		return api.Unauthorized(c)
	}
	id, err := api.ParseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid purchase order ID")
	}
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	in := poService.UpdateInput{
		Status:      req.Status,
		UpdatedBy:   req.UpdatedBy,
		TotalAmount: req.TotalAmount,
		Remarks:     req.Remarks,
	}
	if in.ExpectedDate, err = api.ParseDate("expectedDate", req.ExpectedDate); err != nil {
		return badRequest(c, err.Error())
	}
	if in.ReceivedDate, err = api.ParseDate("receivedDate", req.ReceivedDate); err != nil {
		return badRequest(c, err.Error())
	}

	po, err := h.svc.Update(c.Request().Context(), p, id, in)
	if err != nil {
		return api.Error(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Purchase order updated successfully",
		"purchaseOrder": po,
	})
}

// DELETE /api/purchase-orders/:id
func (h *handler) delete(c echo.Context) error {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		return api.Unauthorized(c)
	}
	id, err := api.ParseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid purchase order ID")
	}
	if err := h.svc.Delete(c.Request().Context(), p, id); err != nil {
		return api.Error(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Purchase order deleted successfully"})
}

type receiveRequest struct {
	ReceivedItems []poEntity.ReceivedLine `json:"receivedItems"`
	ReceivedDate  *string                 `json:"receivedDate"`
}

// POST /api/purchase-orders/:id/receive
func (h *handler) receive(c echo.Context) error {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		return api.Unauthorized(c)
	}
	id, err := api.ParseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid purchase order ID")
	}
	var req receiveRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	receivedDate, err := api.ParseDate("receivedDate", req.ReceivedDate)
	if err != nil {
		return badRequest(c, err.Error())
	}

	status, err := h.svc.Receive(c.Request().Context(), p, id, poService.ReceiveInput{
		ReceivedItems: req.ReceivedItems,
		ReceivedDate:  receivedDate,
	})
	if err != nil {
		return api.Error(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Purchase order received successfully",
		"status":  status,
	})
}

// GET /api/purchase-orders/:id/receipts
func (h *handler) receipts(c echo.Context) error {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		return api.Unauthorized(c)
	}
	id, err := api.ParseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid purchase order ID")
	}
	notes, err := h.svc.ListReceipts(c.Request().Context(), p, id)
	if err != nil {
		return api.Error(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Receipts retrieved successfully",
		"receipts": notes,
	})
}
