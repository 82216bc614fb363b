package model

import "time"

// Movie represents a catalog entry in the `movies` table. The Rating
// column is derived: it always holds the arithmetic mean of every score
// in `ratings` for this movie and is rewritten by the rating refresher
// after each rating mutation. Clients never set it directly; new movies
// start at 0.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – movie title.
//  Description – short synopsis.
//  ReleaseDate – theatrical release date.
//  Rating      – denormalized mean of all user scores (0 when unrated).
type Movie struct {
	ID          uint64    // movies.id
	Title       string    // movies.title
	Description string    // movies.description
	ReleaseDate time.Time // movies.release_date
	Rating      float64   // movies.rating
}
