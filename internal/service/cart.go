package service

import (
	"context"
	"fmt"

	"shoppingcart-backend/internal/cart"
	"shoppingcart-backend/internal/checkout"
	"shoppingcart-backend/internal/dto"
	"shoppingcart-backend/internal/model"
	"shoppingcart-backend/internal/repository"
	"shoppingcart-backend/internal/session"
)

type CartService interface {
	GetCart(ctx context.Context, sess *session.Session) *dto.CartResponse
	AddToCart(ctx context.Context, sess *session.Session, req *dto.AddToCartRequest) (*dto.CartResponse, error)
	UpdateQuantity(ctx context.Context, sess *session.Session, lineID string, quantity int64) (*dto.CartResponse, error)
	RemoveLine(ctx context.Context, sess *session.Session, lineID string) (*dto.CartResponse, error)
	ClearCart(ctx context.Context, sess *session.Session) error
	SetSelection(ctx context.Context, sess *session.Session, req *dto.SelectLinesRequest) (*dto.CartResponse, error)
}

type cartServiceImpl struct {
	cartRepo repository.CartRepository
}

func NewCartService(cartRepo repository.CartRepository) CartService {
	return &cartServiceImpl{cartRepo: cartRepo}
}

func (s *cartServiceImpl) GetCart(ctx context.Context, sess *session.Session) *dto.CartResponse {
	return cartResponse(sess)
}

func (s *cartServiceImpl) AddToCart(ctx context.Context, sess *session.Session, req *dto.AddToCartRequest) (*dto.CartResponse, error) {
	line := sess.Cart.AddLine(req.ProductID, req.UnitPrice, cart.Variant{
		Size:  req.VariantSize,
		Color: req.VariantColor,
	})

	if err := s.cartRepo.UpsertLine(ctx, lineModel(sess.User.ID, line)); err != nil {
		return nil, fmt.Errorf("mirror cart line: %w", err)
	}
	return cartResponse(sess), nil
}

func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, sess *session.Session, lineID string, quantity int64) (*dto.CartResponse, error) {
	line, kept := sess.Cart.SetQuantity(lineID, quantity)
	if !kept {
		// quantity ≤ 0 is normalized to deletion, not rejected
		if err := s.cartRepo.DeleteLine(ctx, sess.User.ID, lineID); err != nil {
			return nil, fmt.Errorf("delete cart line: %w", err)
		}
		return cartResponse(sess), nil
	}

	if err := s.cartRepo.UpsertLine(ctx, lineModel(sess.User.ID, line)); err != nil {
		return nil, fmt.Errorf("mirror cart line: %w", err)
	}
	return cartResponse(sess), nil
}

func (s *cartServiceImpl) RemoveLine(ctx context.Context, sess *session.Session, lineID string) (*dto.CartResponse, error) {
	sess.Cart.RemoveLine(lineID)
	if err := s.cartRepo.DeleteLine(ctx, sess.User.ID, lineID); err != nil {
		return nil, fmt.Errorf("delete cart line: %w", err)
	}
	return cartResponse(sess), nil
}

func (s *cartServiceImpl) ClearCart(ctx context.Context, sess *session.Session) error {
	sess.Cart.Clear()
	if err := s.cartRepo.ClearLines(ctx, sess.User.ID); err != nil {
		return fmt.Errorf("clear cart lines: %w", err)
	}
	return nil
}

func (s *cartServiceImpl) SetSelection(ctx context.Context, sess *session.Session, req *dto.SelectLinesRequest) (*dto.CartResponse, error) {
	sess.Cart.SetSelected(req.LineIDs, req.Selected)
	if err := s.cartRepo.SetSelected(ctx, sess.User.ID, req.LineIDs, req.Selected); err != nil {
		return nil, fmt.Errorf("mirror selection: %w", err)
	}
	return cartResponse(sess), nil
}

func lineModel(userID int64, line cart.Line) *model.CartLine {
	return &model.CartLine{
		LineID:       line.LineID,
		UserID:       userID,
		ProductID:    line.ProductID,
		Quantity:     line.Quantity,
		UnitPrice:    line.UnitPrice,
		VariantSize:  line.Variant.Size,
		VariantColor: line.Variant.Color,
		Selected:     line.Selected,
	}
}

func cartResponse(sess *session.Session) *dto.CartResponse {
	lines := sess.Cart.Lines()
	items := make([]dto.CartLineResponse, len(lines))
	for i, l := range lines {
		items[i] = dto.CartLineResponse{
			LineID:       l.LineID,
			ProductID:    l.ProductID,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			VariantSize:  l.Variant.Size,
			VariantColor: l.Variant.Color,
			Selected:     l.Selected,
		}
	}
	return &dto.CartResponse{
		Items:    items,
		Subtotal: checkout.Subtotal(lines),
	}
}
