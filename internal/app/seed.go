package app

import "github.com/utafrali/reviewcarousel/internal/domain"

// DemoReviews returns sample reviews for a development server.
func DemoReviews() []domain.Review {
	return []domain.Review{
		{ID: "demo-1", Name: "Amara Okafor", Review: "Fast delivery and the quality exceeded my expectations.", Rating: 5},
		{ID: "demo-2", Name: "Lukas Weber", Review: "Good value. Packaging could be better.", Rating: 4},
		{ID: "demo-3", Name: "Mei Tanaka", Review: "Customer support sorted out my issue in minutes.", Rating: 5},
		{ID: "demo-4", Name: "Diego Alvarez", Review: "Does the job, nothing more.", Rating: 3},
	}
}
