package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/models"
)

// SubmitReview appends a review for the acting user. The store performs the
// duplicate check, the append and the rating recompute as one atomic update,
// so two concurrent submissions by the same user cannot both succeed.
func (s *Service) SubmitReview(ctx context.Context, productID, userID, userName string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", models.ErrInvalidRating)
	}

	review := models.Review{
		User:    userID,
		Name:    userName,
		Rating:  rating,
		Comment: comment,
	}

	if err := s.store.AddReview(ctx, productID, review); err != nil {
		return err
	}

	s.invalidate(ctx, productID)
	s.logger.Info("Review added",
		zap.String("product_id", productID),
		zap.String("user_id", userID),
		zap.Int("rating", rating))
	return nil
}
