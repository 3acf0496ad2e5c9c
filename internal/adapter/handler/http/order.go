package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/MikeRez0/yporders/internal/core/domain"
	"github.com/MikeRez0/yporders/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type OrderHandler struct {
	Handler
	service   port.Service
	publisher port.PaymentPublisher
	tx        port.Transactor
	validator port.Validator
}

func NewOrderHandler(service port.Service, publisher port.PaymentPublisher, tx port.Transactor,
	validator port.Validator, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler:   *NewHandler(logger),
		service:   service,
		publisher: publisher,
		tx:        tx,
		validator: validator,
	}, nil
}

// bindRequest binds the body into req and validates it. Type mismatches and
// rule violations are reported together, one entry per field.
func (oh *OrderHandler) bindRequest(ctx *gin.Context, req any) (bool, error) {
	empty, err := bindJSON(ctx, req)
	if empty {
		return true, nil
	}

	var typeErrs *domain.ValidationError
	if err != nil && !errors.As(err, &typeErrs) {
		return false, err
	}

	verr := oh.validator.Validate(req)
	if typeErrs == nil {
		return false, verr
	}
	return false, mergeFieldErrors(typeErrs, verr)
}

type createOrderRequest struct {
	Items         domain.Items `json:"items" validate:"items" swaggertype:"array,object"`
	Total         *float64     `json:"total" validate:"required,gte=0"`
	UserID        *int64       `json:"userId,omitempty" validate:"omitempty,gt=0"`
	PaymentMethod string       `json:"paymentMethod,omitempty" validate:"omitempty,max=64"`
}

type updateOrderRequest struct {
	Items  domain.Items `json:"items" validate:"items" swaggertype:"array,object"`
	Total  *float64     `json:"total" validate:"required,gte=0"`
	UserID *int64       `json:"userId,omitempty" validate:"omitempty,gt=0"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,orderstatus"`
}

type listOrdersRequest struct {
	Limit  int64 `json:"limit" validate:"gte=0,lte=100"`
	Offset int64 `json:"offset" validate:"gte=0"`
}

type orderResponse struct {
	ID            domain.OrderID `json:"id"`
	Items         domain.Items   `json:"items" swaggertype:"array,object"`
	Total         jsonDecimal    `json:"total" swaggertype:"number"`
	Status        string         `json:"status"`
	UserID        *uint64        `json:"userId,omitempty"`
	PaymentMethod string         `json:"paymentMethod"`
}

func newOrderResponse(o *domain.Order) orderResponse {
	r := orderResponse{
		ID:            o.ID,
		Items:         o.Items,
		Total:         jsonDecimal(o.Total),
		Status:        string(o.Status),
		PaymentMethod: o.PaymentMethod,
	}
	if o.UserID != 0 {
		userID := o.UserID
		r.UserID = &userID
	}
	return r
}

// CreateOrder godoc
//
//	@Summary	Create an order and request its payment
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		order	body		createOrderRequest	true	"Order"
//	@Success	201		{object}	response{data=orderResponse}
//	@Failure	400		{object}	response
//	@Failure	500		{object}	response
//	@Router		/api/orders [post]
func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	req := createOrderRequest{}
	empty, err := oh.bindRequest(ctx, &req)
	if empty {
		oh.handleBadRequest(ctx, msgBodyRequired)
		return
	}
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	total, err := toAmount(*req.Total)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	var (
		order     *domain.Order
		messageID domain.MessageID
	)
	// the order and its payment request commit together
	err = oh.tx.WithinTransaction(ctx.Request.Context(), func(txCtx context.Context) error {
		var err error
		order, err = oh.service.CreateOrder(txCtx, req.Items, total, userIDOf(req.UserID), req.PaymentMethod)
		if err != nil {
			return err
		}

		messageID, err = oh.publisher.Publish(txCtx, domain.NewPaymentRequest(order))
		return err
	})
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.logger.Info("order created",
		zap.Uint64("order", uint64(order.ID)),
		zap.String("payment_message", string(messageID)))

	oh.handleSuccessWithStatus(ctx, "Order created successfully", newOrderResponse(order), http.StatusCreated)
}

// UpdateOrder godoc
//
//	@Summary	Replace items, total and user of an order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Order ID"
//	@Param		order	body		updateOrderRequest	true	"Order"
//	@Success	200		{object}	response{data=orderResponse}
//	@Failure	400		{object}	response
//	@Failure	404		{object}	response
//	@Failure	409		{object}	response
//	@Failure	500		{object}	response
//	@Router		/api/orders/{id} [put]
func (oh *OrderHandler) UpdateOrder(ctx *gin.Context) {
	id, err := parseOrderID(ctx.Param("id"))
	if err != nil {
		oh.handleBadRequest(ctx, msgIDBodyRequired)
		return
	}

	req := updateOrderRequest{}
	empty, err := oh.bindRequest(ctx, &req)
	if empty {
		oh.handleBadRequest(ctx, msgIDBodyRequired)
		return
	}
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	total, err := toAmount(*req.Total)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	order, err := oh.service.UpdateOrder(ctx.Request.Context(), id, req.Items, total, userIDOf(req.UserID))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, "Order updated successfully", newOrderResponse(order))
}

// GetOrder godoc
//
//	@Summary	Get an order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		int	true	"Order ID"
//	@Success	200	{object}	response{data=orderResponse}
//	@Failure	400	{object}	response
//	@Failure	404	{object}	response
//	@Router		/api/orders/{id} [get]
func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	id, err := parseOrderID(ctx.Param("id"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	order, err := oh.service.GetOrderByID(ctx.Request.Context(), id)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, "Order retrieved successfully", newOrderResponse(order))
}

// ListOrders godoc
//
//	@Summary	List orders in insertion order
//	@Tags		orders
//	@Produce	json
//	@Param		limit	query		int	false	"Page size (0-100)"	default(20)
//	@Param		offset	query		int	false	"Offset"			default(0)
//	@Success	200		{object}	response{data=[]orderResponse}
//	@Failure	400		{object}	response
//	@Router		/api/orders [get]
func (oh *OrderHandler) ListOrders(ctx *gin.Context) {
	req := listOrdersRequest{Limit: defaultListLimit}
	var fields []domain.FieldError

	if v, ok := ctx.GetQuery("limit"); ok {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			fields = append(fields, domain.FieldError{Field: "limit", Message: "must be an integer"})
		}
		req.Limit = limit
	}
	if v, ok := ctx.GetQuery("offset"); ok {
		offset, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			fields = append(fields, domain.FieldError{Field: "offset", Message: "must be an integer"})
		}
		req.Offset = offset
	}
	if len(fields) > 0 {
		oh.handleError(ctx, domain.NewValidationError(fields...))
		return
	}

	err := oh.validator.Validate(req)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	list, err := oh.service.ListOrders(ctx.Request.Context(), uint64(req.Limit), uint64(req.Offset))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]orderResponse, 0, len(list))
	for _, o := range list {
		result = append(result, newOrderResponse(o))
	}

	oh.handleSuccess(ctx, "Orders retrieved successfully", result)
}

// UpdateOrderStatus godoc
//
//	@Summary	Set the status of an order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Order ID"
//	@Param		status	body		updateStatusRequest	true	"Status"
//	@Success	200		{object}	response{data=orderResponse}
//	@Failure	400		{object}	response
//	@Failure	404		{object}	response
//	@Failure	409		{object}	response
//	@Router		/api/orders/{id}/status [patch]
func (oh *OrderHandler) UpdateOrderStatus(ctx *gin.Context) {
	id, err := parseOrderID(ctx.Param("id"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	req := updateStatusRequest{}
	empty, err := oh.bindRequest(ctx, &req)
	if empty {
		oh.handleBadRequest(ctx, msgBodyRequired)
		return
	}
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	order, err := oh.service.UpdateOrderStatus(ctx.Request.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, "Order status updated successfully", newOrderResponse(order))
}

// DeleteOrder godoc
//
//	@Summary	Delete an order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		int	true	"Order ID"
//	@Success	200	{object}	response
//	@Failure	400	{object}	response
//	@Failure	404	{object}	response
//	@Router		/api/orders/{id} [delete]
func (oh *OrderHandler) DeleteOrder(ctx *gin.Context) {
	id, err := parseOrderID(ctx.Param("id"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	deleted, err := oh.service.DeleteOrder(ctx.Request.Context(), id)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	if !deleted {
		oh.handleError(ctx, domain.ErrDataNotFound)
		return
	}

	oh.handleSuccess(ctx, "Order deleted successfully", nil)
}

func parseOrderID(s string) (domain.OrderID, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, domain.NewValidationError(domain.FieldError{Field: "id", Message: "must be a positive integer"})
	}
	return domain.OrderID(id), nil
}

func toAmount(f float64) (decimal.Decimal, error) {
	d, err := decimal.NewFromFloat64(f)
	if err != nil {
		return decimal.Decimal{}, domain.NewValidationError(domain.FieldError{Field: "total", Message: "is not a valid amount"})
	}
	return d, nil
}

func userIDOf(v *int64) uint64 {
	if v == nil || *v <= 0 {
		return 0
	}
	return uint64(*v)
}
