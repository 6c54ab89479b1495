package directory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/avlin/browsercraft-go/internal/dependencies/mocks"
	"github.com/avlin/browsercraft-go/internal/model"
	"github.com/avlin/browsercraft-go/internal/testutil"
)

type DirectorySuite struct {
	suite.Suite
	clock     *mocks.MockClock
	directory *Directory
}

func TestDirectorySuite(t *testing.T) {
	suite.Run(t, new(DirectorySuite))
}

func (s *DirectorySuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.directory = New(s.clock, testutil.NopLogger())
}

func (s *DirectorySuite) TestRegisterSucceeds() {
	player, err := s.directory.Register("conn-1", "alice")
	s.Require().NoError(err)

	s.Equal(model.ConnectionID("conn-1"), player.ID)
	s.Equal("alice", player.Username)
	s.Equal(model.StatusInLobby, player.Status)
	s.Equal(s.clock.Now(), player.ConnectedAt)
	s.Equal(1, s.directory.Len())
}

func (s *DirectorySuite) TestRegisterRejectsDuplicateUsername() {
	_, err := s.directory.Register("conn-1", "alice")
	s.Require().NoError(err)

	_, err = s.directory.Register("conn-2", "alice")
	s.ErrorIs(err, model.ErrDuplicateUsername)
	s.Equal(1, s.directory.Len())
}

func (s *DirectorySuite) TestRegisterUsernameIsCaseSensitive() {
	_, err := s.directory.Register("conn-1", "alice")
	s.Require().NoError(err)

	_, err = s.directory.Register("conn-2", "Alice")
	s.NoError(err)
}

func (s *DirectorySuite) TestRegisterRejectsInvalidUsernames() {
	for _, username := range []string{"", "has space", "dash-ed", "tooLongUsername123456789", "émile"} {
		_, err := s.directory.Register("conn-1", username)
		s.ErrorIs(err, model.ErrInvalidUsername, "username %q", username)
	}
	s.Equal(0, s.directory.Len())
}

func (s *DirectorySuite) TestRegisterAcceptsBoundaryLengths() {
	_, err := s.directory.Register("conn-1", "a")
	s.NoError(err)

	_, err = s.directory.Register("conn-2", "abcdefghij0123456789ABC") // 23 chars
	s.NoError(err)
}

func (s *DirectorySuite) TestUnregisterReturnsPlayer() {
	_, _ = s.directory.Register("conn-1", "alice")

	player := s.directory.Unregister("conn-1")
	s.Require().NotNil(player)
	s.Equal("alice", player.Username)
	s.Equal(0, s.directory.Len())
}

func (s *DirectorySuite) TestUnregisterIsIdempotent() {
	_, _ = s.directory.Register("conn-1", "alice")

	s.NotNil(s.directory.Unregister("conn-1"))
	s.Nil(s.directory.Unregister("conn-1"))
}

func (s *DirectorySuite) TestUnregisterFreesUsername() {
	_, _ = s.directory.Register("conn-1", "alice")
	s.directory.Unregister("conn-1")

	_, err := s.directory.Register("conn-2", "alice")
	s.NoError(err)
}

func (s *DirectorySuite) TestLookup() {
	_, _ = s.directory.Register("conn-1", "alice")

	player, err := s.directory.Lookup("conn-1")
	s.Require().NoError(err)
	s.Equal("alice", player.Username)

	_, err = s.directory.Lookup("conn-2")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *DirectorySuite) TestSetStatus() {
	_, _ = s.directory.Register("conn-1", "alice")

	err := s.directory.SetStatus("conn-1", model.StatusInRoom)
	s.Require().NoError(err)

	player, _ := s.directory.Lookup("conn-1")
	s.Equal(model.StatusInRoom, player.Status)
}

func (s *DirectorySuite) TestSetStatusGameLifecycle() {
	_, _ = s.directory.Register("conn-1", "alice")

	// The embedding game layer drives this transition when a room's
	// game launches, and back again when it ends
	s.Require().NoError(s.directory.SetStatus("conn-1", model.StatusInGame))
	player, _ := s.directory.Lookup("conn-1")
	s.Equal(model.StatusInGame, player.Status)

	s.Require().NoError(s.directory.SetStatus("conn-1", model.StatusInLobby))
	player, _ = s.directory.Lookup("conn-1")
	s.Equal(model.StatusInLobby, player.Status)
}

func (s *DirectorySuite) TestSetStatusUnknownPlayer() {
	err := s.directory.SetStatus("conn-1", model.StatusInRoom)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *DirectorySuite) TestPlayersListsAllRegistered() {
	_, _ = s.directory.Register("conn-1", "alice")
	_, _ = s.directory.Register("conn-2", "bob")

	players := s.directory.Players()
	s.Len(players, 2)
}
