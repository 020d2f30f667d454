package database

import (
	"database/sql"
	"fmt"
	"strings"

	"plant-care-service/models"
)

const plantColumns = `id, name, slug, description, image_url, price, category_id,
	stock_quantity, care_level, light_requirements, water_frequency, pet_friendly`

func scanPlant(row interface{ Scan(...interface{}) error }) (*models.Plant, error) {
	var p models.Plant
	var description, imageURL, categoryID sql.NullString
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&description,
		&imageURL,
		&p.Price,
		&categoryID,
		&p.StockQuantity,
		&p.CareLevel,
		&p.LightRequirements,
		&p.WaterFrequency,
		&p.PetFriendly,
	)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	p.ImageURL = imageURL.String
	p.CategoryID = categoryID.String
	return &p, nil
}

// GetPlants returns the full plant catalog ordered by name.
func (d *Database) GetPlants() ([]models.Plant, error) {
	query := fmt.Sprintf("SELECT %s FROM plants ORDER BY name ASC", plantColumns)

	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query plants: %w", err)
	}
	defer rows.Close()

	var plants []models.Plant
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plant: %w", err)
		}
		plants = append(plants, *p)
	}

	return plants, nil
}

// GetPlantsByCategory returns catalog plants belonging to one category.
func (d *Database) GetPlantsByCategory(categoryID string) ([]models.Plant, error) {
	query := fmt.Sprintf("SELECT %s FROM plants WHERE category_id = ? ORDER BY name ASC", plantColumns)

	rows, err := d.db.Query(query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plants for category %s: %w", categoryID, err)
	}
	defer rows.Close()

	var plants []models.Plant
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plant: %w", err)
		}
		plants = append(plants, *p)
	}

	return plants, nil
}

// GetPlantByID returns a single catalog plant
func (d *Database) GetPlantByID(id string) (*models.Plant, error) {
	query := fmt.Sprintf("SELECT %s FROM plants WHERE id = ?", plantColumns)

	p, err := scanPlant(d.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plant with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch plant %s: %w", id, err)
	}

	return p, nil
}

// SearchPlants matches the catalog by name or description, case-insensitive.
func (d *Database) SearchPlants(term string) ([]models.Plant, error) {
	query := fmt.Sprintf(`SELECT %s FROM plants
	WHERE LOWER(name) LIKE ? OR LOWER(description) LIKE ?
	ORDER BY name ASC`, plantColumns)

	pattern := "%" + strings.ToLower(term) + "%"
	rows, err := d.db.Query(query, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search plants: %w", err)
	}
	defer rows.Close()

	var plants []models.Plant
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plant: %w", err)
		}
		plants = append(plants, *p)
	}

	return plants, nil
}

// GetCategories returns all catalog categories ordered by name.
func (d *Database) GetCategories() ([]models.Category, error) {
	query := `SELECT id, name, slug, description FROM categories ORDER BY name ASC`

	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &description); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Description = description.String
		categories = append(categories, c)
	}

	return categories, nil
}

// GetCategoryBySlug returns a single category
func (d *Database) GetCategoryBySlug(slug string) (*models.Category, error) {
	query := `SELECT id, name, slug, description FROM categories WHERE slug = ?`

	var c models.Category
	var description sql.NullString
	err := d.db.QueryRow(query, slug).Scan(&c.ID, &c.Name, &c.Slug, &description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("category with slug %s not found", slug)
		}
		return nil, fmt.Errorf("failed to fetch category %s: %w", slug, err)
	}

	c.Description = description.String
	return &c, nil
}
