package service

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/movie-catalog/internal/model"
)

func TestReviewCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a linked rating", func(t *testing.T) {
		f := newFakeStore()
		movieID := f.addMovie("Heat")
		userID := f.addUser("user")
		svc := NewReviewService(f)

		in := ReviewInput{MovieID: movieID, Title: "great", Text: "loved it", Score: 4}
		if err := svc.Create(ctx, userID, in); err != nil {
			t.Fatalf("create: %v", err)
		}
		rv, err := f.ReviewByUserAndMovie(ctx, userID, movieID)
		if err != nil {
			t.Fatalf("review lookup: %v", err)
		}
		r, err := f.RatingByReview(ctx, rv.ID)
		if err != nil {
			t.Fatalf("rating lookup: %v", err)
		}
		if r.Score != 4 {
			t.Errorf("score = %d, want 4", r.Score)
		}
		if got := f.movies[movieID].Rating; got != 4.0 {
			t.Errorf("rating = %v, want 4.0", got)
		}
	})

	t.Run("adopts an existing standalone rating", func(t *testing.T) {
		f := newFakeStore()
		movieID := f.addMovie("Heat")
		userID := f.addUser("user")
		ratings := NewRatingService(f)
		reviews := NewReviewService(f)

		if err := ratings.Create(ctx, userID, movieID, 2); err != nil {
			t.Fatalf("create rating: %v", err)
		}
		in := ReviewInput{MovieID: movieID, Title: "better on rewatch", Text: "it grew on me", Score: 4}
		if err := reviews.Create(ctx, userID, in); err != nil {
			t.Fatalf("create review: %v", err)
		}

		// Still exactly one rating for the pair, now carrying the new
		// score and the review link.
		if len(f.ratings) != 1 {
			t.Fatalf("ratings = %d, want 1", len(f.ratings))
		}
		r, err := f.RatingByUserAndMovie(ctx, userID, movieID)
		if err != nil {
			t.Fatalf("rating lookup: %v", err)
		}
		if r.Score != 4 {
			t.Errorf("score = %d, want 4", r.Score)
		}
		rv, _ := f.ReviewByUserAndMovie(ctx, userID, movieID)
		if r.ReviewID == nil || *r.ReviewID != rv.ID {
			t.Errorf("rating not linked to review")
		}
		if got := f.movies[movieID].Rating; got != 4.0 {
			t.Errorf("rating = %v, want 4.0", got)
		}
	})

	t.Run("second review for the same movie is rejected", func(t *testing.T) {
		f := newFakeStore()
		movieID := f.addMovie("Heat")
		userID := f.addUser("user")
		svc := NewReviewService(f)

		in := ReviewInput{MovieID: movieID, Title: "first", Text: "text", Score: 5}
		if err := svc.Create(ctx, userID, in); err != nil {
			t.Fatalf("create: %v", err)
		}
		in.Title = "second"
		in.Score = 1
		err := svc.Create(ctx, userID, in)
		if !errors.Is(err, ErrReviewExists) {
			t.Fatalf("err = %v, want ErrReviewExists", err)
		}
		rv, _ := f.ReviewByUserAndMovie(ctx, userID, movieID)
		if rv.Title != "first" {
			t.Errorf("title = %q, want the original review untouched", rv.Title)
		}
		if got := f.movies[movieID].Rating; got != 5.0 {
			t.Errorf("rating = %v, want 5.0", got)
		}
	})

	t.Run("missing movie", func(t *testing.T) {
		f := newFakeStore()
		svc := NewReviewService(f)
		in := ReviewInput{MovieID: 999, Title: "ghost", Text: "text", Score: 3}
		if err := svc.Create(ctx, f.addUser("user"), in); !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestReviewUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("rewrites text and score together", func(t *testing.T) {
		f := newFakeStore()
		movieID := f.addMovie("Heat")
		userID := f.addUser("user")
		svc := NewReviewService(f)

		if err := svc.Create(ctx, userID, ReviewInput{MovieID: movieID, Title: "ok", Text: "fine", Score: 3}); err != nil {
			t.Fatalf("create: %v", err)
		}
		rv, _ := f.ReviewByUserAndMovie(ctx, userID, movieID)
		in := ReviewInput{Title: "actually great", Text: "rewatched it", HasSpoiler: true, Score: 5}
		if err := svc.Update(ctx, userID, rv.ID, in); err != nil {
			t.Fatalf("update: %v", err)
		}

		got, _ := f.ReviewByID(ctx, rv.ID)
		if got.Title != "actually great" || !got.HasSpoiler {
			t.Errorf("review not rewritten: %+v", got)
		}
		r, _ := f.RatingByReview(ctx, rv.ID)
		if r.Score != 5 {
			t.Errorf("score = %d, want 5", r.Score)
		}
		if agg := f.movies[movieID].Rating; agg != 5.0 {
			t.Errorf("rating = %v, want 5.0", agg)
		}
	})

	t.Run("non-owner gets not found", func(t *testing.T) {
		f := newFakeStore()
		movieID := f.addMovie("Heat")
		ownerID := f.addUser("user")
		strangerID := f.addUser("user")
		svc := NewReviewService(f)

		if err := svc.Create(ctx, ownerID, ReviewInput{MovieID: movieID, Title: "mine", Text: "text", Score: 4}); err != nil {
			t.Fatalf("create: %v", err)
		}
		rv, _ := f.ReviewByUserAndMovie(ctx, ownerID, movieID)
		err := svc.Update(ctx, strangerID, rv.ID, ReviewInput{Title: "hijack", Text: "nope", Score: 1})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestReviewUpdateMove(t *testing.T) {
	ctx := context.Background()

	t.Run("moves review and rating and refreshes both movies", func(t *testing.T) {
		f := newFakeStore()
		m1 := f.addMovie("Heat")
		m2 := f.addMovie("Ronin")
		userID := f.addUser("user")
		svc := NewReviewService(f)

		if err := svc.Create(ctx, userID, ReviewInput{MovieID: m1, Title: "misfiled", Text: "text", Score: 5}); err != nil {
			t.Fatalf("create: %v", err)
		}
		rv, _ := f.ReviewByUserAndMovie(ctx, userID, m1)
		in := ReviewInput{MovieID: m2, Title: "refiled", Text: "text", Score: 3}
		if err := svc.Update(ctx, userID, rv.ID, in); err != nil {
			t.Fatalf("update: %v", err)
		}

		got, _ := f.ReviewByID(ctx, rv.ID)
		if got.MovieID != m2 {
			t.Errorf("review movie = %d, want %d", got.MovieID, m2)
		}
		r, err := f.RatingByReview(ctx, rv.ID)
		if err != nil {
			t.Fatalf("rating lookup: %v", err)
		}
		if r.MovieID != m2 || r.Score != 3 {
			t.Errorf("rating = %+v, want movie %d score 3", r, m2)
		}
		if agg := f.movies[m1].Rating; agg != 0 {
			t.Errorf("old movie rating = %v, want 0", agg)
		}
		if agg := f.movies[m2].Rating; agg != 3.0 {
			t.Errorf("new movie rating = %v, want 3.0", agg)
		}
	})

	t.Run("zero movieId keeps the current movie", func(t *testing.T) {
		f := newFakeStore()
		movieID := f.addMovie("Heat")
		userID := f.addUser("user")
		svc := NewReviewService(f)

		if err := svc.Create(ctx, userID, ReviewInput{MovieID: movieID, Title: "t", Text: "x", Score: 4}); err != nil {
			t.Fatalf("create: %v", err)
		}
		rv, _ := f.ReviewByUserAndMovie(ctx, userID, movieID)
		if err := svc.Update(ctx, userID, rv.ID, ReviewInput{Title: "t2", Text: "x", Score: 4}); err != nil {
			t.Fatalf("update: %v", err)
		}
		got, _ := f.ReviewByID(ctx, rv.ID)
		if got.MovieID != movieID {
			t.Errorf("review movie = %d, want %d", got.MovieID, movieID)
		}
	})

	t.Run("move onto an already reviewed movie is a conflict", func(t *testing.T) {
		f := newFakeStore()
		m1 := f.addMovie("Heat")
		m2 := f.addMovie("Ronin")
		userID := f.addUser("user")
		svc := NewReviewService(f)

		if err := svc.Create(ctx, userID, ReviewInput{MovieID: m1, Title: "one", Text: "x", Score: 4}); err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := svc.Create(ctx, userID, ReviewInput{MovieID: m2, Title: "two", Text: "x", Score: 2}); err != nil {
			t.Fatalf("create: %v", err)
		}
		rv, _ := f.ReviewByUserAndMovie(ctx, userID, m1)
		err := svc.Update(ctx, userID, rv.ID, ReviewInput{MovieID: m2, Title: "one", Text: "x", Score: 4})
		if !errors.Is(err, ErrReviewExists) {
			t.Fatalf("err = %v, want ErrReviewExists", err)
		}
		got, _ := f.ReviewByID(ctx, rv.ID)
		if got.MovieID != m1 {
			t.Errorf("review moved despite conflict")
		}
	})

	t.Run("move onto a movie with a standalone rating is a conflict", func(t *testing.T) {
		f := newFakeStore()
		m1 := f.addMovie("Heat")
		m2 := f.addMovie("Ronin")
		userID := f.addUser("user")
		ratings := NewRatingService(f)
		reviews := NewReviewService(f)

		if err := reviews.Create(ctx, userID, ReviewInput{MovieID: m1, Title: "one", Text: "x", Score: 4}); err != nil {
			t.Fatalf("create review: %v", err)
		}
		if err := ratings.Create(ctx, userID, m2, 2); err != nil {
			t.Fatalf("create rating: %v", err)
		}
		rv, _ := f.ReviewByUserAndMovie(ctx, userID, m1)
		err := reviews.Update(ctx, userID, rv.ID, ReviewInput{MovieID: m2, Title: "one", Text: "x", Score: 4})
		if !errors.Is(err, ErrRatingExists) {
			t.Fatalf("err = %v, want ErrRatingExists", err)
		}
	})

	t.Run("move onto a missing movie", func(t *testing.T) {
		f := newFakeStore()
		m1 := f.addMovie("Heat")
		userID := f.addUser("user")
		svc := NewReviewService(f)

		if err := svc.Create(ctx, userID, ReviewInput{MovieID: m1, Title: "one", Text: "x", Score: 4}); err != nil {
			t.Fatalf("create: %v", err)
		}
		rv, _ := f.ReviewByUserAndMovie(ctx, userID, m1)
		err := svc.Update(ctx, userID, rv.ID, ReviewInput{MovieID: 999, Title: "one", Text: "x", Score: 4})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestReviewDelete(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fakeStore, *ReviewService, uint64, uint64, uint64) {
		t.Helper()
		f := newFakeStore()
		movieID := f.addMovie("Heat")
		userID := f.addUser("user")
		svc := NewReviewService(f)
		if err := svc.Create(ctx, userID, ReviewInput{MovieID: movieID, Title: "gone soon", Text: "text", Score: 4}); err != nil {
			t.Fatalf("create: %v", err)
		}
		rv, _ := f.ReviewByUserAndMovie(ctx, userID, movieID)
		return f, svc, movieID, userID, rv.ID
	}

	t.Run("owner delete removes the linked rating and refreshes", func(t *testing.T) {
		f, svc, movieID, userID, reviewID := setup(t)
		if err := svc.Delete(ctx, userID, model.RoleUser, reviewID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := f.ReviewByID(ctx, reviewID); !errors.Is(err, ErrNotFound) {
			t.Errorf("review still present")
		}
		if _, err := f.RatingByReview(ctx, reviewID); !errors.Is(err, ErrNotFound) {
			t.Errorf("linked rating still present")
		}
		if got := f.movies[movieID].Rating; got != 0 {
			t.Errorf("rating = %v, want 0", got)
		}
	})

	t.Run("moderator may delete anyone's review", func(t *testing.T) {
		f, svc, _, _, reviewID := setup(t)
		modID := f.addUser(model.RoleModerator)
		if err := svc.Delete(ctx, modID, model.RoleModerator, reviewID); err != nil {
			t.Fatalf("delete: %v", err)
		}
	})

	t.Run("other users get not found", func(t *testing.T) {
		f, svc, _, _, reviewID := setup(t)
		strangerID := f.addUser("user")
		err := svc.Delete(ctx, strangerID, model.RoleUser, reviewID)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
		if _, lookupErr := f.ReviewByID(ctx, reviewID); lookupErr != nil {
			t.Errorf("review should survive: %v", lookupErr)
		}
	})
}

func TestReviewList(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	movieID := f.addMovie("Heat")
	otherMovie := f.addMovie("Ronin")
	alice := f.addUser("user")
	bob := f.addUser("user")
	svc := NewReviewService(f)

	seed := []struct {
		user uint64
		in   ReviewInput
	}{
		{alice, ReviewInput{MovieID: movieID, Title: "a1", Text: "t", Score: 5}},
		{bob, ReviewInput{MovieID: movieID, Title: "b1", Text: "t", HasSpoiler: true, Score: 3}},
		{alice, ReviewInput{MovieID: otherMovie, Title: "a2", Text: "t", Score: 4}},
	}
	for _, s := range seed {
		if err := svc.Create(ctx, s.user, s.in); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	t.Run("by movie", func(t *testing.T) {
		rows, total, err := svc.List(ctx, ReviewFilter{MovieID: movieID, Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 2 || len(rows) != 2 {
			t.Errorf("total = %d rows = %d, want 2 and 2", total, len(rows))
		}
	})

	t.Run("by user", func(t *testing.T) {
		rows, total, err := svc.List(ctx, ReviewFilter{UserID: alice, Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 2 || len(rows) != 2 {
			t.Errorf("total = %d rows = %d, want 2 and 2", total, len(rows))
		}
	})

	t.Run("hide spoilers", func(t *testing.T) {
		rows, total, err := svc.List(ctx, ReviewFilter{MovieID: movieID, HideSpoilers: true, Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 1 || len(rows) != 1 || rows[0].ReviewTitle != "a1" {
			t.Errorf("got %d/%d rows, want only the spoiler-free one", len(rows), total)
		}
	})

	t.Run("rows carry the linked score", func(t *testing.T) {
		rows, _, err := svc.List(ctx, ReviewFilter{UserID: bob, Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(rows) != 1 || rows[0].Score != 3 {
			t.Fatalf("rows = %+v, want one row with score 3", rows)
		}
	})
}
