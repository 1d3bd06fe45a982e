package web_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/chargen/internal/entities"
	"github.com/KirkDiggler/chargen/internal/errors"
	"github.com/KirkDiggler/chargen/internal/handlers/web"
	"github.com/KirkDiggler/chargen/internal/orchestrators/character"
	charactermock "github.com/KirkDiggler/chargen/internal/orchestrators/character/mock"
	"github.com/KirkDiggler/chargen/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	mockSvc *charactermock.MockService
	routes  http.Handler
	at      time.Time
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSvc = charactermock.NewMockService(s.ctrl)
	s.at = time.Unix(1700000000, 0)

	h, err := web.NewHandler(&web.Config{CharacterService: s.mockSvc})
	s.Require().NoError(err)
	s.routes = h.Routes()
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	s.routes.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) expectGet(key string, c entities.Character) {
	s.mockSvc.EXPECT().
		GetCharacter(gomock.Any(), &character.GetCharacterInput{ID: key}).
		Return(&character.GetCharacterOutput{ID: key, Character: c, Sheet: entities.NewSheet(c)}, nil)
}

func (s *HandlerTestSuite) TestIndex() {
	rec := s.do(http.MethodGet, "/chargen/", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("You must be given a key to use this service!", rec.Body.String())
}

func (s *HandlerTestSuite) TestHubRedirectsByState() {
	testCases := []struct {
		character entities.Character
		location  string
	}{
		{testutils.NewCharacterAt(s.at), "/chargen/roll_stats/k1"},
		{testutils.RolledCharacterAt(s.at), "/chargen/pick_class/k1"},
		{testutils.ClassedCharacterAt(s.at), "/chargen/roll_hp_and_gear/k1"},
	}

	for _, tc := range testCases {
		s.Run(string(tc.character.State()), func() {
			s.expectGet("k1", tc.character)

			rec := s.do(http.MethodGet, "/chargen/k1", nil)
			s.Equal(http.StatusFound, rec.Code)
			s.Equal(tc.location, rec.Header().Get("Location"))
		})
	}
}

func (s *HandlerTestSuite) TestHubRendersFinishedSheet() {
	s.expectGet("k1", testutils.FinishedCharacterAt(s.at))

	rec := s.do(http.MethodGet, "/chargen/k1", nil)
	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Contains(body, testutils.TestCharacterName)
	s.Contains(body, "chain mail")
	s.Contains(body, "dwarf")
	s.Contains(body, "2023-11-14 22:13:20")
}

func (s *HandlerTestSuite) TestHubUnknownKey() {
	s.mockSvc.EXPECT().GetCharacter(gomock.Any(), gomock.Any()).Return(nil, errors.NotFound("character with ID k1 not found"))

	rec := s.do(http.MethodGet, "/chargen/k1", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerTestSuite) TestStepPageRendersForm() {
	s.expectGet("k1", testutils.NewCharacterAt(s.at))

	rec := s.do(http.MethodGet, "/chargen/roll_stats/k1", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `action="/chargen/roll_stats/k1"`)
	s.Contains(rec.Body.String(), "???")
	s.Contains(rec.Body.String(), "+?")
}

func (s *HandlerTestSuite) TestStepPageWrongStateRedirectsToHub() {
	s.expectGet("k1", testutils.FinishedCharacterAt(s.at))

	rec := s.do(http.MethodGet, "/chargen/pick_class/k1", nil)
	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/chargen/k1", rec.Header().Get("Location"))
}

func (s *HandlerTestSuite) TestPickClassPageListsChoices() {
	s.expectGet("k1", testutils.RolledCharacterAt(s.at))

	rec := s.do(http.MethodGet, "/chargen/pick_class/k1", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `<option value="magic-user">`)
	s.Contains(rec.Body.String(), `<option value="chr">`)
}

func (s *HandlerTestSuite) TestRollStatsPostRedirectsToHub() {
	s.mockSvc.EXPECT().
		RollStats(gomock.Any(), &character.RollStatsInput{ID: "k1"}).
		Return(&character.RollStatsOutput{ID: "k1"}, nil)

	rec := s.do(http.MethodPost, "/chargen/roll_stats/k1", url.Values{})
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/chargen/k1", rec.Header().Get("Location"))
}

func (s *HandlerTestSuite) TestStatePostOnWrongStateRedirectsToHub() {
	s.mockSvc.EXPECT().
		RollHPAndGear(gomock.Any(), gomock.Any()).
		Return(nil, errors.StateGuard(entities.StateNew, entities.StateHasClass))

	rec := s.do(http.MethodPost, "/chargen/roll_hp_and_gear/k1", url.Values{})
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/chargen/k1", rec.Header().Get("Location"))
}

func (s *HandlerTestSuite) TestPickClassPostReadsForm() {
	s.mockSvc.EXPECT().
		PickClass(gomock.Any(), &character.PickClassInput{
			ID:        "k1",
			ClassName: "thief",
			SwapLeft:  "str",
			SwapRight: "dex",
			Name:      "Bilbo",
		}).
		Return(&character.PickClassOutput{ID: "k1"}, nil)

	rec := s.do(http.MethodPost, "/chargen/pick_class/k1", url.Values{
		"character_class": {"thief"},
		"left-stat":       {"str"},
		"right-stat":      {"dex"},
		"name":            {"Bilbo"},
	})
	s.Equal(http.StatusSeeOther, rec.Code)
}

func (s *HandlerTestSuite) TestPickClassPostInvalidClass() {
	s.mockSvc.EXPECT().
		PickClass(gomock.Any(), gomock.Any()).
		Return(nil, errors.InvalidArgumentf(`"bard" is not a valid character class`))

	rec := s.do(http.MethodPost, "/chargen/pick_class/k1", url.Values{"character_class": {"bard"}})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "bard")
}

func (s *HandlerTestSuite) TestMakeCharacter() {
	s.mockSvc.EXPECT().
		CreateCharacter(gomock.Any(), &character.CreateCharacterInput{PlayerName: "Gary"}).
		Return(&character.CreateCharacterOutput{ID: "new-key"}, nil)

	rec := s.do(http.MethodPost, "/chargen/make_character", url.Values{"player_name": {"Gary"}})
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/chargen/new-key", rec.Header().Get("Location"))
}

func (s *HandlerTestSuite) TestMakeCharacterPage() {
	rec := s.do(http.MethodGet, "/chargen/make_character", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `name="player_name"`)
}

func (s *HandlerTestSuite) TestViewCharacters() {
	s.mockSvc.EXPECT().ListCharacters(gomock.Any(), gomock.Any()).Return(&character.ListCharactersOutput{
		Characters: []*character.ListedCharacter{
			{ID: "k1", Character: testutils.NewCharacterAt(s.at)},
			{ID: "k2", Character: testutils.FinishedCharacterAt(s.at)},
		},
	}, nil)

	rec := s.do(http.MethodGet, "/chargen/view_characters", nil)
	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Contains(body, `href="/chargen/k1"`)
	s.Contains(body, `href="/chargen/k2"`)
	s.Contains(body, testutils.TestCharacterName)
}

func (s *HandlerTestSuite) TestInternalErrorsHideDetail() {
	s.mockSvc.EXPECT().ListCharacters(gomock.Any(), gomock.Any()).Return(nil, errors.Internal("dial tcp 10.0.0.1: refused"))

	rec := s.do(http.MethodGet, "/chargen/view_characters", nil)
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.NotContains(rec.Body.String(), "10.0.0.1")
}

func TestNewHandlerRequiresService(t *testing.T) {
	_, err := web.NewHandler(&web.Config{})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
