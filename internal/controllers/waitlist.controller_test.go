package controllers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"vrajamarii/internal/controllers"
	"vrajamarii/internal/mocks"
	"vrajamarii/internal/models"
	"vrajamarii/internal/repository"
)

const validWaitlistBody = `{
	"firstName": "Ana",
	"lastName": "Pop",
	"email": "ana@example.com",
	"phone": " 0722000000 ",
	"ageInterval": "25-34",
	"preferredMonth": "june",
	"selectedOffers": ["detox", "yoga"],
	"gdprConsent": true
}`

func TestJoinWaitlist(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*mocks.MockWaitlistRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "registered",
			body: validWaitlistBody,
			setupMock: func(m *mocks.MockWaitlistRepository) {
				m.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, repository.ErrNotFound)
				m.On("Create", mock.Anything, mock.MatchedBy(func(e *models.WaitlistEntry) bool {
					return e.FirstName == "Ana" &&
						e.Phone != nil && *e.Phone == "0722000000" &&
						len(e.SelectedOffers) == 2 &&
						e.GDPRConsent
				})).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Registered on the waitlist",
		},
		{
			name: "email already registered",
			body: validWaitlistBody,
			setupMock: func(m *mocks.MockWaitlistRepository) {
				m.On("FindByEmail", mock.Anything, "ana@example.com").Return(&models.WaitlistEntry{ID: 3}, nil)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Email already registered",
		},
		{
			name: "duplicate on insert",
			body: validWaitlistBody,
			setupMock: func(m *mocks.MockWaitlistRepository) {
				m.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, repository.ErrNotFound)
				m.On("Create", mock.Anything, mock.Anything).Return(repository.ErrAlreadyExists)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Email already registered",
		},
		{
			name: "database failure",
			body: validWaitlistBody,
			setupMock: func(m *mocks.MockWaitlistRepository) {
				m.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, repository.ErrNotFound)
				m.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Registration failed",
		},
		{
			name:           "consent missing",
			body:           `{"firstName":"Ana","lastName":"Pop","email":"ana@example.com","ageInterval":"25-34","preferredMonth":"june","selectedOffers":["detox"],"gdprConsent":false}`,
			setupMock:      func(*mocks.MockWaitlistRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
		{
			name:           "invalid email",
			body:           `{"firstName":"Ana","lastName":"Pop","email":"not-an-email","ageInterval":"25-34","preferredMonth":"june","selectedOffers":["detox"],"gdprConsent":true}`,
			setupMock:      func(*mocks.MockWaitlistRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockWaitlistRepository)
			tt.setupMock(repo)
			controller := controllers.NewWaitlistController(repo, zap.NewNop())

			router := setupTestRouter()
			router.POST("/waitlist", controller.JoinWaitlist)

			w := performRequest(router, http.MethodPost, "/waitlist", []byte(tt.body))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, decodeResponse(t, w)["message"])
			repo.AssertExpectations(t)
		})
	}
}
