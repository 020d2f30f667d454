package database

import (
	"testing"
	"time"

	"plant-care-service/models"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*Database, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewDatabaseFromDB(db), mock
}

func plantRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "slug", "description", "image_url", "price", "category_id",
		"stock_quantity", "care_level", "light_requirements", "water_frequency", "pet_friendly",
	})
}

func TestGetPlants(t *testing.T) {
	d, mock := newMockDB(t)

	rows := plantRows().
		AddRow("p1", "Monstera Deliciosa", "monstera-deliciosa", "Split-leaf classic", "https://img/p1.jpg",
			45.00, "c1", 12, "easy", "bright indirect", "weekly", false).
		AddRow("p2", "Spider Plant", "spider-plant", nil, nil,
			15.50, nil, 30, "easy", "any", "weekly", true)

	mock.ExpectQuery("SELECT (.+) FROM plants ORDER BY name ASC").WillReturnRows(rows)

	plants, err := d.GetPlants()
	require.NoError(t, err)
	require.Len(t, plants, 2)
	assert.Equal(t, "Monstera Deliciosa", plants[0].Name)
	assert.Equal(t, 45.00, plants[0].Price)
	// NULLs come back as empty strings.
	assert.Equal(t, "", plants[1].Description)
	assert.Equal(t, "", plants[1].CategoryID)
	assert.True(t, plants[1].PetFriendly)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPlantByIDNotFound(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM plants WHERE id = ?").
		WithArgs("ghost").
		WillReturnRows(plantRows())

	_, err := d.GetPlantByID("ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetPlantsByCategory(t *testing.T) {
	d, mock := newMockDB(t)

	rows := plantRows().
		AddRow("p1", "Monstera Deliciosa", "monstera-deliciosa", "", "", 45.00, "c1",
			12, "easy", "bright indirect", "weekly", false)

	mock.ExpectQuery("SELECT (.+) FROM plants WHERE category_id = ?").
		WithArgs("c1").
		WillReturnRows(rows)

	plants, err := d.GetPlantsByCategory("c1")
	require.NoError(t, err)
	require.Len(t, plants, 1)
	assert.Equal(t, "c1", plants[0].CategoryID)
}

func TestSearchPlants(t *testing.T) {
	d, mock := newMockDB(t)

	rows := plantRows().
		AddRow("p2", "Spider Plant", "spider-plant", "Hardy and forgiving", "", 15.50, "c1",
			30, "easy", "any", "weekly", true)

	// Mixed-case terms are lowered to match the LOWER() columns.
	mock.ExpectQuery("SELECT (.+) FROM plants").
		WithArgs("%spider%", "%spider%").
		WillReturnRows(rows)

	plants, err := d.SearchPlants("Spider")
	require.NoError(t, err)
	require.Len(t, plants, 1)
	assert.Equal(t, "Spider Plant", plants[0].Name)
}

func TestGetCategories(t *testing.T) {
	d, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "name", "slug", "description"}).
		AddRow("c1", "Indoor Plants", "indoor-plants", "Houseplants for any room").
		AddRow("c2", "Succulents", "succulents", nil)

	mock.ExpectQuery("SELECT id, name, slug, description FROM categories").WillReturnRows(rows)

	categories, err := d.GetCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "indoor-plants", categories[0].Slug)
	assert.Equal(t, "", categories[1].Description)
}

func TestGetCategoryBySlug(t *testing.T) {
	d, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "name", "slug", "description"}).
		AddRow("c2", "Succulents", "succulents", nil)

	mock.ExpectQuery("SELECT id, name, slug, description FROM categories WHERE slug = ?").
		WithArgs("succulents").
		WillReturnRows(rows)

	category, err := d.GetCategoryBySlug("succulents")
	require.NoError(t, err)
	assert.Equal(t, "c2", category.ID)
	assert.Equal(t, "", category.Description)

	mock.ExpectQuery("SELECT id, name, slug, description FROM categories WHERE slug = ?").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description"}))

	_, err = d.GetCategoryBySlug("ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetUserProfile(t *testing.T) {
	d, mock := newMockDB(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "email", "full_name", "avatar_url", "created_at", "updated_at"}).
		AddRow("u1", "ada@example.com", "Ada", "https://img/ada.png", now, now)

	mock.ExpectQuery("SELECT (.+) FROM user_profiles").
		WithArgs("u1").
		WillReturnRows(rows)

	profile, err := d.GetUserProfile("u1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", profile.Email)

	mock.ExpectQuery("SELECT (.+) FROM user_profiles").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "avatar_url", "created_at", "updated_at"}))

	_, err = d.GetUserProfile("ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateUserAvatar(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectExec("UPDATE user_profiles SET avatar_url").
		WithArgs("https://img/new.png", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, d.UpdateUserAvatar("u1", "https://img/new.png"))

	// No matching profile row is reported as not found.
	mock.ExpectExec("UPDATE user_profiles SET avatar_url").
		WithArgs("https://img/new.png", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := d.UpdateUserAvatar("ghost", "https://img/new.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpsertUserProfile(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO user_profiles").
		WithArgs("u1", "ada@example.com", "Ada", "https://img/ada.png").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := d.UpsertUserProfile(&models.UserProfile{
		ID:        "u1",
		Email:     "ada@example.com",
		FullName:  "Ada",
		AvatarURL: "https://img/ada.png",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveChatMessageFillsID(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO chat_messages").
		WithArgs("s1", "u1", "user", "Why are the leaves yellow?", "").
		WillReturnResult(sqlmock.NewResult(7, 1))

	msg := &models.ChatMessage{
		SessionID: "s1",
		UserID:    "u1",
		Role:      "user",
		Content:   "Why are the leaves yellow?",
	}
	require.NoError(t, d.SaveChatMessage(msg))
	assert.Equal(t, int64(7), msg.ID)
}

func TestGetChatHistory(t *testing.T) {
	d, mock := newMockDB(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "session_id", "user_id", "role", "content", "image_url", "created_at"}).
		AddRow(1, "s1", "u1", "user", "Why are the leaves yellow?", "", now).
		AddRow(2, "s1", "u1", "assistant", "Usually overwatering.", "", now)

	mock.ExpectQuery("SELECT (.+) FROM chat_messages").
		WithArgs("s1", 50).
		WillReturnRows(rows)

	messages, err := d.GetChatHistory("s1", 50)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "assistant", messages[1].Role)
}

func TestDeleteChatSession(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectExec("DELETE FROM chat_messages WHERE session_id = ?").
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, d.DeleteChatSession("s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
