package model

func (a *Author) ToDTO() *AuthorDTO {
	if a == nil {
		return nil
	}
	return &AuthorDTO{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Bio:       a.Bio,
	}
}

func ToDTOs(authors []*Author) []*AuthorDTO {
	out := make([]*AuthorDTO, 0, len(authors))
	for _, a := range authors {
		out = append(out, a.ToDTO())
	}
	return out
}

func (r CreateAuthorRequest) ToEntity() *Author {
	return &Author{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
	}
}

func (r UpdateAuthorRequest) ToEntity() *Author {
	return &Author{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
	}
}
