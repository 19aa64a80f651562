package usecase

import (
	"context"
	"fmt"

	"dropship-store/internal/data/entity"
	"dropship-store/internal/data/repository"
	"dropship-store/internal/dto/request"
	"dropship-store/internal/dto/response"
	"dropship-store/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CartService interface {
	GetCart(ctx context.Context, userID string) (*response.CartResponse, error)
	AddToCart(ctx context.Context, userID string, req *request.AddToCartRequest) (*response.CartResponse, error)
	UpdateCartItem(ctx context.Context, userID string, req *request.UpdateCartRequest) (*response.CartResponse, error)
	RemoveFromCart(ctx context.Context, userID, productID string) (*response.CartResponse, error)
}

type cartService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCartService(repo *repository.Repository, log *zap.Logger) CartService {
	return &cartService{
		repo: repo,
		log:  log.With(zap.String("service", "cart")),
	}
}

func (s *cartService) GetCart(ctx context.Context, userID string) (*response.CartResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildCart(ctx, user.Cart)
}

func (s *cartService) AddToCart(ctx context.Context, userID string, req *request.AddToCartRequest) (*response.CartResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	// Only the user row is locked; a product deleted afterwards shows up as a missing line.
	product, err := s.repo.Product.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return nil, notFound("product")
	}

	var cart []entity.CartItem
	err = s.repo.Store.WithTx(ctx, func(ctx context.Context) error {
		user, err := s.loadUser(ctx, userID)
		if err != nil {
			return err
		}

		if i := user.CartLine(req.ProductID); i >= 0 {
			user.Cart[i].Quantity += quantity
		} else {
			user.Cart = append(user.Cart, entity.CartItem{Product: req.ProductID, Quantity: quantity})
		}

		if err := s.repo.User.Update(ctx, user); err != nil {
			return fmt.Errorf("save cart: %w", err)
		}
		cart = user.Cart
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Product added to cart",
		zap.String("user_id", userID),
		zap.String("product_id", req.ProductID),
		zap.Int("quantity", quantity))

	return s.buildCart(ctx, cart)
}

func (s *cartService) UpdateCartItem(ctx context.Context, userID string, req *request.UpdateCartRequest) (*response.CartResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}
	if req.Quantity < 1 {
		return nil, validationError("quantity must be at least 1")
	}

	var cart []entity.CartItem
	err := s.repo.Store.WithTx(ctx, func(ctx context.Context) error {
		user, err := s.loadUser(ctx, userID)
		if err != nil {
			return err
		}

		i := user.CartLine(req.ProductID)
		if i < 0 {
			return notFound("cart item")
		}
		user.Cart[i].Quantity = req.Quantity

		if err := s.repo.User.Update(ctx, user); err != nil {
			return fmt.Errorf("save cart: %w", err)
		}
		cart = user.Cart
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Cart item updated",
		zap.String("user_id", userID),
		zap.String("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity))

	return s.buildCart(ctx, cart)
}

func (s *cartService) RemoveFromCart(ctx context.Context, userID, productID string) (*response.CartResponse, error) {
	var cart []entity.CartItem
	err := s.repo.Store.WithTx(ctx, func(ctx context.Context) error {
		user, err := s.loadUser(ctx, userID)
		if err != nil {
			return err
		}

		i := user.CartLine(productID)
		if i < 0 {
			cart = user.Cart
			return nil
		}
		user.Cart = append(user.Cart[:i], user.Cart[i+1:]...)

		if err := s.repo.User.Update(ctx, user); err != nil {
			return fmt.Errorf("save cart: %w", err)
		}
		cart = user.Cart
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Product removed from cart", zap.String("user_id", userID), zap.String("product_id", productID))
	return s.buildCart(ctx, cart)
}

func (s *cartService) loadUser(ctx context.Context, userID string) (*entity.User, error) {
	if err := checkID("user", userID); err != nil {
		return nil, err
	}
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, notFound("user")
	}
	return user, nil
}

// buildCart joins cart lines with their products and prices them.
func (s *cartService) buildCart(ctx context.Context, items []entity.CartItem) (*response.CartResponse, error) {
	cart := &response.CartResponse{Items: make([]response.CartLineResponse, 0, len(items))}
	subtotal := decimal.Zero

	for _, item := range items {
		line := response.CartLineResponse{Product: item.Product, Quantity: item.Quantity}
		cart.TotalQuantity += item.Quantity

		product, err := s.repo.Product.FindByID(ctx, item.Product)
		if err != nil {
			return nil, fmt.Errorf("load cart product: %w", err)
		}
		if product == nil {
			line.Missing = true
			cart.Items = append(cart.Items, line)
			continue
		}

		line.Name = product.Name
		line.Slug = product.Slug
		line.Price = product.Price
		if len(product.Images) > 0 {
			line.Image = product.Images[0]
		}

		price, err := decimal.NewFromString(product.Price)
		if err != nil {
			s.log.Warn("Product has an unparsable price",
				zap.String("product_id", product.ID),
				zap.String("price", product.Price))
		} else {
			total := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			line.LineTotal = total.StringFixed(2)
			subtotal = subtotal.Add(total)
		}

		cart.Items = append(cart.Items, line)
	}

	cart.Subtotal = subtotal.StringFixed(2)
	return cart, nil
}
