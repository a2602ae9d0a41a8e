package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type DatabaseTestSuite struct {
	suite.Suite
	client *Client
	ctx    context.Context
}

func (s *DatabaseTestSuite) SetupTest() {
	client, err := New(filepath.Join(s.T().TempDir(), "fridgekeep.db"))
	s.Require().NoError(err)
	s.client = client
	s.ctx = context.Background()
}

func (s *DatabaseTestSuite) TearDownTest() {
	s.Require().NoError(s.client.Close())
}

func (s *DatabaseTestSuite) TestCreateUser_FirstUserIsAdmin() {
	first, err := s.client.CreateUser(s.ctx, "alice", "hash-a")
	s.Require().NoError(err)
	s.True(first.IsAdmin)

	second, err := s.client.CreateUser(s.ctx, "bob", "hash-b")
	s.Require().NoError(err)
	s.False(second.IsAdmin)
}

func (s *DatabaseTestSuite) TestCreateUser_Duplicate() {
	_, err := s.client.CreateUser(s.ctx, "alice", "hash-a")
	s.Require().NoError(err)

	_, err = s.client.CreateUser(s.ctx, "alice", "hash-other")
	s.ErrorIs(err, ErrDuplicateUser)

	stats, err := s.client.GetStats(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(1, stats.Users)

	// The stored hash must be the original one.
	user, err := s.client.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("hash-a", user.PasswordHash)
}

func (s *DatabaseTestSuite) TestGetUserByUsername_NotFound() {
	_, err := s.client.GetUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *DatabaseTestSuite) TestGrantAdmin() {
	_, err := s.client.CreateUser(s.ctx, "alice", "hash-a")
	s.Require().NoError(err)
	bob, err := s.client.CreateUser(s.ctx, "bob", "hash-b")
	s.Require().NoError(err)
	s.False(bob.IsAdmin)

	s.Require().NoError(s.client.GrantAdmin(s.ctx, "bob"))

	bobAgain, err := s.client.GetUserByID(s.ctx, bob.ID)
	s.Require().NoError(err)
	s.True(bobAgain.IsAdmin)

	s.ErrorIs(s.client.GrantAdmin(s.ctx, "nobody"), ErrUserNotFound)
}

func (s *DatabaseTestSuite) TestEnsureDefaultFridge_Idempotent() {
	first, err := s.client.EnsureDefaultFridge(s.ctx, "Kitchen Fridge")
	s.Require().NoError(err)
	s.Equal("Kitchen Fridge", first.Name)

	// A second bootstrap, even with a different name, returns the same row.
	second, err := s.client.EnsureDefaultFridge(s.ctx, "Other Fridge")
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
	s.Equal("Kitchen Fridge", second.Name)

	stats, err := s.client.GetStats(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(1, stats.Fridges)
}

func (s *DatabaseTestSuite) seedProducts() (alice, bob *User, fridge *Fridge) {
	var err error
	alice, err = s.client.CreateUser(s.ctx, "alice", "hash-a")
	s.Require().NoError(err)
	bob, err = s.client.CreateUser(s.ctx, "bob", "hash-b")
	s.Require().NoError(err)
	fridge, err = s.client.EnsureDefaultFridge(s.ctx, "Default Fridge")
	s.Require().NoError(err)

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	for _, p := range []*Product{
		{Name: "Milk", PurchaseDate: day(1), ExpirationDate: day(10), Category: "dairy", Quantity: 1, UserID: alice.ID, FridgeID: fridge.ID},
		{Name: "Yogurt", PurchaseDate: day(1), ExpirationDate: day(5), Category: "dairy", Quantity: 2, UserID: alice.ID, FridgeID: fridge.ID},
		{Name: "Apples", PurchaseDate: day(2), ExpirationDate: day(20), Category: "fruit", Quantity: 6, UserID: alice.ID, FridgeID: fridge.ID},
		{Name: "Cheese", PurchaseDate: day(3), ExpirationDate: day(30), Category: "dairy", Quantity: 1, UserID: bob.ID, FridgeID: fridge.ID},
	} {
		s.Require().NoError(s.client.CreateProduct(s.ctx, p))
	}
	return alice, bob, fridge
}

func (s *DatabaseTestSuite) TestListProductsByOwner_OnlyOwnProducts() {
	alice, bob, _ := s.seedProducts()

	aliceProducts, err := s.client.ListProductsByOwner(s.ctx, alice.ID, "")
	s.Require().NoError(err)
	s.Len(aliceProducts, 3)
	for _, p := range aliceProducts {
		s.Equal(alice.ID, p.UserID)
	}

	bobProducts, err := s.client.ListProductsByOwner(s.ctx, bob.ID, "")
	s.Require().NoError(err)
	s.Len(bobProducts, 1)
	s.Equal("Cheese", bobProducts[0].Name)
}

func (s *DatabaseTestSuite) TestListProductsByOwner_CategoryFilterAndOrder() {
	alice, _, _ := s.seedProducts()

	dairy, err := s.client.ListProductsByOwner(s.ctx, alice.ID, "dairy")
	s.Require().NoError(err)
	s.Require().Len(dairy, 2)
	// Soonest-expiring first.
	s.Equal("Yogurt", dairy[0].Name)
	s.Equal("Milk", dairy[1].Name)

	all, err := s.client.ListProductsByOwner(s.ctx, alice.ID, "")
	s.Require().NoError(err)
	for i := 1; i < len(all); i++ {
		s.False(all[i].ExpirationDate.Before(all[i-1].ExpirationDate))
	}
}

func (s *DatabaseTestSuite) TestCreateProduct_DefaultStatus() {
	alice, _, fridge := s.seedProducts()

	product := &Product{
		Name:           "Eggs",
		PurchaseDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		ExpirationDate: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
		Category:       "dairy",
		Quantity:       10,
		UserID:         alice.ID,
		FridgeID:       fridge.ID,
	}
	s.Require().NoError(s.client.CreateProduct(s.ctx, product))

	stored, err := s.client.GetProductByID(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Equal(ProductStatusActive, stored.Status)
}

func (s *DatabaseTestSuite) TestTransferProduct() {
	alice, bob, _ := s.seedProducts()

	products, err := s.client.ListProductsByOwner(s.ctx, alice.ID, "dairy")
	s.Require().NoError(err)
	milk := products[1]

	s.Require().NoError(s.client.TransferProduct(s.ctx, milk.ID, alice.ID, bob.ID))

	transferred, err := s.client.GetProductByID(s.ctx, milk.ID)
	s.Require().NoError(err)
	s.Equal(bob.ID, transferred.UserID)
	s.Equal(ProductStatusGivenAway, transferred.Status)

	// The prior owner no longer sees the product.
	remaining, err := s.client.ListProductsByOwner(s.ctx, alice.ID, "dairy")
	s.Require().NoError(err)
	s.Len(remaining, 1)
}

func (s *DatabaseTestSuite) TestTransferProduct_NotOwner() {
	alice, bob, _ := s.seedProducts()

	cheese, err := s.client.ListProductsByOwner(s.ctx, bob.ID, "")
	s.Require().NoError(err)
	s.Require().Len(cheese, 1)

	// Alice doesn't own bob's cheese.
	err = s.client.TransferProduct(s.ctx, cheese[0].ID, alice.ID, bob.ID)
	s.ErrorIs(err, ErrNotOwner)

	unchanged, err := s.client.GetProductByID(s.ctx, cheese[0].ID)
	s.Require().NoError(err)
	s.Equal(bob.ID, unchanged.UserID)
	s.Equal(ProductStatusActive, unchanged.Status)
}

func (s *DatabaseTestSuite) TestTransferProduct_ToSelf() {
	alice, _, _ := s.seedProducts()

	products, err := s.client.ListProductsByOwner(s.ctx, alice.ID, "")
	s.Require().NoError(err)

	err = s.client.TransferProduct(s.ctx, products[0].ID, alice.ID, alice.ID)
	s.ErrorIs(err, ErrInvalidTarget)

	unchanged, err := s.client.GetProductByID(s.ctx, products[0].ID)
	s.Require().NoError(err)
	s.Equal(ProductStatusActive, unchanged.Status)
}

func (s *DatabaseTestSuite) TestGetProductByID_NotFound() {
	_, err := s.client.GetProductByID(s.ctx, 4242)
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *DatabaseTestSuite) TestIssueReports_NewestFirst() {
	alice, _, fridge := s.seedProducts()

	for _, r := range []*IssueReport{
		{IssueType: "temperature", Description: "too warm", UserID: alice.ID, FridgeID: fridge.ID},
		{IssueType: "smell", Description: "something went off", UserID: alice.ID, FridgeID: fridge.ID},
		{IssueType: "door", Description: "seal is broken", UserID: alice.ID, FridgeID: fridge.ID},
	} {
		s.Require().NoError(s.client.CreateIssueReport(s.ctx, r))
	}

	reports, err := s.client.ListIssueReports(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(reports, 3)
	s.Equal("door", reports[0].IssueType)
	s.Equal("temperature", reports[2].IssueType)
	s.Equal("alice", reports[0].User.Username)
	for i := 1; i < len(reports); i++ {
		s.False(reports[i].CreatedAt.After(reports[i-1].CreatedAt))
	}
}

func (s *DatabaseTestSuite) TestGetStats() {
	alice, bob, _ := s.seedProducts()

	products, err := s.client.ListProductsByOwner(s.ctx, alice.ID, "fruit")
	s.Require().NoError(err)
	s.Require().NoError(s.client.TransferProduct(s.ctx, products[0].ID, alice.ID, bob.ID))

	stats, err := s.client.GetStats(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(2, stats.Users)
	s.EqualValues(1, stats.Fridges)
	s.EqualValues(4, stats.Products)
	s.EqualValues(3, stats.ActiveProducts)
	s.EqualValues(1, stats.GivenAway)
	s.EqualValues(0, stats.IssueReports)
}

func TestDatabaseTestSuite(t *testing.T) {
	suite.Run(t, new(DatabaseTestSuite))
}
