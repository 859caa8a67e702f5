package handlers

import (
	"encoding/json"

	"github.com/maruel/bookcatalog/internal/catalog"
	"github.com/maruel/bookcatalog/internal/server/dto"
)

// --- Catalog to DTO conversions ---

func bookToResponse(b *catalog.Book) (dto.Book, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, dto.InternalWithError(err)
	}
	return raw, nil
}

func booksToResponse(books []*catalog.Book) ([]dto.Book, error) {
	out := make([]dto.Book, 0, len(books))
	for _, b := range books {
		raw, err := bookToResponse(b)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

// --- DTO to catalog conversions ---

func inputFromDTO(title, author string, year dto.Year, malformed []string) *catalog.Input {
	return &catalog.Input{Title: title, Author: author, Year: json.RawMessage(year), Malformed: malformed}
}
