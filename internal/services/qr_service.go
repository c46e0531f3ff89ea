package services

import (
	"context"

	apperrors "stockqr/internal/errors"
	"stockqr/internal/qr"
	"stockqr/internal/store"
)

// qrService renders product labels.
type qrService struct {
	store    *store.Store
	renderer qr.Renderer
}

// NewQRService creates a new QRServicer drawing codes with renderer.
func NewQRService(s *store.Store, renderer qr.Renderer) QRServicer {
	return &qrService{store: s, renderer: renderer}
}

// ProductPayload returns the text encoded in a product's QR code.
func (s *qrService) ProductPayload(ctx context.Context, productID string) (string, error) {
	s.store.Lock()
	product, found := s.store.Products.FindByID(ctx, productID)
	s.store.Unlock()

	if !found {
		return "", apperrors.ErrProductNotFound
	}
	text, err := qr.PayloadFor(product).Encode()
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrQRRenderFailed, err)
	}
	return text, nil
}

// ProductQR renders a product's QR code as an image.
func (s *qrService) ProductQR(ctx context.Context, productID string, opts qr.Options) ([]byte, error) {
	text, err := s.ProductPayload(ctx, productID)
	if err != nil {
		return nil, err
	}

	img, err := s.renderer.Render(text, opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQRRenderFailed, err)
	}
	return img, nil
}
