package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/avlin/browsercraft-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestCreateAndGetAccount() {
	account := &model.Account{
		Username:     "alice",
		PasswordHash: "hash",
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	err := s.storage.CreateAccount(s.ctx, account)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(account.Username, retrieved.Username)
	s.Equal(account.PasswordHash, retrieved.PasswordHash)
	s.True(account.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestCreateAccountTaken() {
	account := &model.Account{Username: "alice", PasswordHash: "hash"}
	s.Require().NoError(s.storage.CreateAccount(s.ctx, account))

	err := s.storage.CreateAccount(s.ctx, &model.Account{Username: "alice", PasswordHash: "other"})
	s.ErrorIs(err, model.ErrUsernameTaken)

	retrieved, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("hash", retrieved.PasswordHash)
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestDeleteAccount() {
	account := &model.Account{Username: "alice", PasswordHash: "hash"}
	s.Require().NoError(s.storage.CreateAccount(s.ctx, account))

	s.Require().NoError(s.storage.DeleteAccount(s.ctx, "alice"))

	_, err := s.storage.GetAccount(s.ctx, "alice")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestDeleteAbsentAccountIsNoOp() {
	s.NoError(s.storage.DeleteAccount(s.ctx, "nonexistent"))
}

func (s *StorageSuite) TestAccountsAreKeyPrefixed() {
	account := &model.Account{Username: "alice", PasswordHash: "hash"}
	s.Require().NoError(s.storage.CreateAccount(s.ctx, account))

	s.True(s.mini.Exists("bcraft:account:alice"))
}
