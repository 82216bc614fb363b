package model

// CastRole enumerates the professional roles a person can hold on a
// movie's cast and crew list.
type CastRole string

const (
	CastActor    CastRole = "actor"
	CastDirector CastRole = "director"
	CastWriter   CastRole = "writer"
	CastComposer CastRole = "composer"
)

// Valid reports whether cr is one of the known cast roles.
func (cr CastRole) Valid() bool {
	switch cr {
	case CastActor, CastDirector, CastWriter, CastComposer:
		return true
	}
	return false
}

// Name is a cast or crew person in the `names` table.
type Name struct {
	ID          uint64 // names.id
	FullName    string // names.full_name
	Description string // names.description
}

// CastAndCrew is a join row in `cast_and_crew` linking a movie to a
// person with a professional role. A movie's cast list is replaced
// wholesale on movie update.
type CastAndCrew struct {
	ID      uint64   // cast_and_crew.id
	MovieID uint64   // cast_and_crew.movie_id
	NameID  uint64   // cast_and_crew.name_id
	Role    CastRole // cast_and_crew.role
}

// CastMember is the joined view of a cast_and_crew row and its person,
// as shown on movie details.
type CastMember struct {
	NameID   uint64
	FullName string
	Role     CastRole
}

// Credit is the joined view of a cast_and_crew row and its movie, as
// shown on a person's filmography.
type Credit struct {
	MovieID    uint64
	MovieTitle string
	Role       CastRole
}
