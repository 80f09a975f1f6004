package services

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bulanstore/bulan-api/app/models"
	"github.com/bulanstore/bulan-api/app/repositories"
	"github.com/bulanstore/bulan-api/app/utils/calc"
)

var (
	ErrInvalidSignature  = errors.New("notification signature mismatch")
	ErrPaymentGateway    = errors.New("payment gateway request failed")
	ErrUnknownOrderInPay = errors.New("notification references an unknown order")
)

// SnapGateway is the slice of snap.Client the service uses; tests swap in a
// fake so no HTTP call leaves the process.
type SnapGateway interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// MidtransNotification is the webhook payload sent by Midtrans after a
// transaction changes state.
type MidtransNotification struct {
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	FraudStatus       string `json:"fraud_status"`
	SignatureKey      string `json:"signature_key"`
	PaymentType       string `json:"payment_type"`
}

type PaymentService struct {
	gateway   SnapGateway
	orderRepo repositories.OrderRepository
	serverKey string
	appURL    string
}

func NewPaymentService(gateway SnapGateway, orderRepo repositories.OrderRepository, serverKey, appURL string) *PaymentService {
	return &PaymentService{
		gateway:   gateway,
		orderRepo: orderRepo,
		serverKey: serverKey,
		appURL:    appURL,
	}
}

// CreateTransaction registers the order with Midtrans Snap and stores the
// returned token and redirect URL on the order. The order number doubles as
// the Midtrans order id so webhook notifications can be matched back.
// Midtrans rejects any request where gross_amount differs from the item
// detail sum, so items are priced tax-inclusive and rounding drift is
// absorbed by an adjustment line.
func (s *PaymentService) CreateTransaction(ctx context.Context, order *models.Order, user *models.User) (string, error) {
	taxPercent := calc.TaxPercent()
	items := make([]midtrans.ItemDetails, 0, len(order.OrderItems)+1)
	for _, item := range order.OrderItems {
		name := item.ProductName
		if len(name) > 50 {
			name = name[:50]
		}
		lineGross := calc.CalculateGrandTotal(item.Subtotal, calc.CalculateTax(item.Subtotal, taxPercent))
		unitPrice := lineGross.Div(decimal.NewFromInt(int64(item.Qty))).Round(0)
		items = append(items, midtrans.ItemDetails{
			ID:    item.ProductID,
			Name:  name,
			Price: unitPrice.IntPart(),
			Qty:   int32(item.Qty),
		})
	}

	grossAmount := order.TotalAmount.Round(0)
	itemsTotal := decimal.Zero
	for _, item := range items {
		itemsTotal = itemsTotal.Add(decimal.NewFromInt(item.Price).Mul(decimal.NewFromInt32(item.Qty)))
	}
	if diff := grossAmount.Sub(itemsTotal); !diff.IsZero() {
		items = append(items, midtrans.ItemDetails{
			ID:    "ADJUSTMENT",
			Name:  "Price adjustment",
			Price: diff.IntPart(),
			Qty:   1,
		})
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.Number,
			GrossAmt: grossAmount.IntPart(),
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FirstName,
			LName: user.LastName,
			Email: user.Email,
			Phone: user.Phone,
		},
		Items: &items,
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s/orders/%s", s.appURL, order.ID),
		},
		EnabledPayments: snap.AllSnapPaymentType,
		CustomField1:    order.ID,
		CustomField2:    user.ID,
	}

	resp, midErr := s.gateway.CreateTransaction(req)
	if midErr != nil {
		zap.L().Error("snap transaction failed",
			zap.String("order_number", order.Number), zap.Error(midErr.RawError))
		return "", ErrPaymentGateway
	}

	if err := s.orderRepo.UpdateMidtransDetails(ctx, order.ID, resp.Token, resp.RedirectURL); err != nil {
		return "", fmt.Errorf("failed to store payment details: %w", err)
	}
	order.MidtransTransactionID = resp.Token
	order.MidtransPaymentURL = resp.RedirectURL
	return resp.RedirectURL, nil
}

// HandleNotification applies a Midtrans webhook to the order it references.
// The signature is checked before anything is trusted. Orders already in a
// terminal state are left alone so replayed notifications stay harmless.
func (s *PaymentService) HandleNotification(ctx context.Context, payload MidtransNotification) error {
	if !s.validSignature(payload) {
		return ErrInvalidSignature
	}

	order, err := s.orderRepo.FindByNumber(ctx, payload.OrderID)
	if err != nil {
		return fmt.Errorf("failed to look up order: %w", err)
	}
	if order == nil {
		return ErrUnknownOrderInPay
	}

	if order.Status == models.OrderStatusCanceled || order.Status == models.OrderStatusDelivered {
		zap.L().Info("ignoring notification for finalized order",
			zap.String("order_number", order.Number), zap.String("status", string(order.Status)))
		return nil
	}

	switch payload.TransactionStatus {
	case "capture", "settlement":
		if payload.FraudStatus != "" && payload.FraudStatus != "accept" {
			return s.failPayment(ctx, order)
		}
		if order.PaymentStatus == models.PaymentStatusSettled {
			return nil
		}
		zap.L().Info("payment settled",
			zap.String("order_number", order.Number), zap.String("payment_type", payload.PaymentType))
		return s.orderRepo.UpdatePaymentAndStatus(ctx, order.ID, models.PaymentStatusSettled, models.OrderStatusProcessing)
	case "deny", "cancel", "expire", "failure":
		return s.failPayment(ctx, order)
	case "pending":
		return nil
	default:
		zap.L().Warn("unhandled midtrans transaction status",
			zap.String("order_number", order.Number), zap.String("transaction_status", payload.TransactionStatus))
		return nil
	}
}

func (s *PaymentService) failPayment(ctx context.Context, order *models.Order) error {
	zap.L().Info("payment failed, canceling order", zap.String("order_number", order.Number))
	return s.orderRepo.UpdatePaymentAndStatus(ctx, order.ID, models.PaymentStatusFailed, models.OrderStatusCanceled)
}

// validSignature recomputes sha512(order_id + status_code + gross_amount +
// server_key) and compares it to the signature sent with the notification.
func (s *PaymentService) validSignature(payload MidtransNotification) bool {
	sum := sha512.Sum512([]byte(payload.OrderID + payload.StatusCode + payload.GrossAmount + s.serverKey))
	return hex.EncodeToString(sum[:]) == payload.SignatureKey
}
