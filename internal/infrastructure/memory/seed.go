package memory

import (
	"time"

	"github.com/barbercommunity/marketplace/internal/core/domain"
)

// SeedCatalog returns a catalog with a handful of providers and posts for
// local development.
func SeedCatalog() *Catalog {
	barbers := []domain.Barber{
		{ID: "1", Name: "Carlos Ruiz", Location: "Bogotá", Rating: 4.8, ExperienceYears: 12, PriceRange: "$$", Services: "Corte clásico, barba", Bio: "Fades y navaja."},
		{ID: "2", Name: "Luisa Gómez", Location: "Medellín", Rating: 4.6, ExperienceYears: 7, PriceRange: "$$$", Services: "Diseños, color"},
		{ID: "3", Name: "Andrés Mora", Location: "Cali", Rating: 4.2, ExperienceYears: 4, PriceRange: "$", Services: "Corte infantil"},
		{ID: "4", Name: "Diana Pérez", Location: "Bogotá", Rating: 0, ExperienceYears: 1},
	}
	base := time.Date(2026, 1, 10, 15, 0, 0, 0, time.UTC)
	posts := []domain.Post{
		{ID: "10", UserID: "1", UserName: "Carlos Ruiz", UserRole: string(domain.RoleProvider), UserLocation: "Bogotá", Content: "Nuevo fade degradado.", LikesCount: 14, CreatedAt: base},
		{ID: "11", UserID: "2", UserName: "Luisa Gómez", UserRole: string(domain.RoleProvider), UserLocation: "Medellín", Content: "Diseño geométrico para hoy.", LikesCount: 9, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "12", UserID: "1", UserName: "Carlos Ruiz", UserRole: string(domain.RoleProvider), UserLocation: "Bogotá", Content: "Afeitado con toalla caliente.", LikesCount: 3, CreatedAt: base.Add(26 * time.Hour)},
	}
	return NewCatalog(barbers, posts)
}
