package entity

import (
	"slices"
	"time"
)

// CurrentUserState срез состояния "текущий пользователь"
type CurrentUserState struct {
	UserID       string `json:"userId"`
	Role         Role   `json:"role"`
	User         *User  `json:"user,omitempty"`
	NeedsRefresh bool   `json:"needRefresh"`
}

// Clone глубокая копия среза
func (s CurrentUserState) Clone() CurrentUserState {
	s.User = s.User.Clone()
	return s
}

// CurrentBooksState срез состояния "текущая книга / книги"
type CurrentBooksState struct {
	Books        []Book `json:"books"`
	Book         Book   `json:"book"`
	NeedsRefresh bool   `json:"needRefresh"`
}

// DefaultCurrentBooksState значение среза по умолчанию (пустые списки, не nil)
func DefaultCurrentBooksState() CurrentBooksState {
	return CurrentBooksState{
		Books: []Book{},
		Book:  Book{Reviews: []string{}, LikedUsers: []string{}},
	}
}

// Clone глубокая копия среза
func (s CurrentBooksState) Clone() CurrentBooksState {
	books := make([]Book, len(s.Books))
	for i, b := range s.Books {
		books[i] = b.Clone()
	}
	s.Books = books
	s.Book = s.Book.Clone()
	return s
}

// Normalize заменяет nil слайсы пустыми, чтобы JSON снимок был стабильным
func (s *CurrentBooksState) Normalize() {
	if s.Books == nil {
		s.Books = []Book{}
	}
	if s.Book.Reviews == nil {
		s.Book.Reviews = []string{}
	}
	if s.Book.LikedUsers == nil {
		s.Book.LikedUsers = []string{}
	}
	s.Books = slices.Clip(s.Books)
}

// ClientStateRecord строка таблицы client_states (Postgres backend)
type ClientStateRecord struct {
	Name      string    `gorm:"type:varchar(64);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ClientStateRecord) TableName() string {
	return "client_states"
}
