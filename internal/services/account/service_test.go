package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/avlin/browsercraft-go/internal/dependencies/mocks"
	"github.com/avlin/browsercraft-go/internal/model"
	"github.com/avlin/browsercraft-go/internal/storage/memory"
	"github.com/avlin/browsercraft-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, clk, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestRegisterSucceeds() {
	acct, err := s.service.Register(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)

	s.Equal("alice", acct.Username)
	s.NotEqual("hunter2", acct.PasswordHash)

	stored, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(acct.PasswordHash, stored.PasswordHash)
}

func (s *ServiceSuite) TestRegisterRejectsInvalidUsername() {
	_, err := s.service.Register(s.ctx, "not valid!", "hunter2")
	s.ErrorIs(err, model.ErrInvalidUsername)
}

func (s *ServiceSuite) TestRegisterRejectsShortPassword() {
	_, err := s.service.Register(s.ctx, "alice", "abc")
	s.ErrorIs(err, model.ErrInvalidPassword)
}

func (s *ServiceSuite) TestRegisterRejectsTakenUsername() {
	_, err := s.service.Register(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "alice", "different")
	s.ErrorIs(err, model.ErrUsernameTaken)
}

func (s *ServiceSuite) TestAuthenticateSucceeds() {
	_, err := s.service.Register(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)

	s.NoError(s.service.Authenticate(s.ctx, "alice", "hunter2"))
}

func (s *ServiceSuite) TestAuthenticateWrongPassword() {
	_, err := s.service.Register(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)

	err = s.service.Authenticate(s.ctx, "alice", "wrong")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestAuthenticateUnknownUser() {
	err := s.service.Authenticate(s.ctx, "nobody", "hunter2")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}
