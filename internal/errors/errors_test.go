package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/oakhaven/emberquest/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "skill not found",
			expected: "NOT_FOUND: skill not found",
		},
		{
			name:     "rule error",
			code:     errors.CodeAlreadyLearned,
			message:  "skill already learned",
			expected: "ALREADY_LEARNED: skill already learned",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("monster not in encounter").
		WithMeta("monster_id", "goblin:0").
		WithMeta("encounter_id", "enc_1")

	s.Assert().Equal("goblin:0", err.Meta["monster_id"])
	s.Assert().Equal("enc_1", err.Meta["encounter_id"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to load save slot")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to load save slot", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	base := errors.LevelTooLowf("requires level %d", 5)
	wrapped := errors.Wrap(base, "cannot learn skill")

	s.Assert().Equal(errors.CodeLevelTooLow, wrapped.Code)
	s.Assert().True(errors.IsLevelTooLow(wrapped))
}

func (s *ErrorsTestSuite) TestRuleCodeHelpers() {
	s.Assert().True(errors.IsWrongClass(errors.WrongClassf("not in the %s pool", "knight")))
	s.Assert().True(errors.IsAlreadyLearned(errors.AlreadyLearnedf("already learned %q", "fireball")))
	s.Assert().True(errors.IsMissingPrerequisite(errors.MissingPrerequisitef("requires %q", "toughness_1")))
	s.Assert().True(errors.IsAlreadyAssigned(errors.AlreadyAssignedf("class already chosen")))
	s.Assert().True(errors.IsOnCooldown(errors.OnCooldownf("ready in %d turns", 2)))
	s.Assert().False(errors.IsWrongClass(errors.NotFound("nope")))
}

func (s *ErrorsTestSuite) TestRecoverable() {
	s.Assert().True(errors.IsRecoverable(errors.InvalidArgument("bad input")))
	s.Assert().True(errors.IsRecoverable(errors.OnCooldownf("wait")))
	s.Assert().False(errors.IsRecoverable(errors.Internal("boom")))
	s.Assert().False(errors.IsRecoverable(errors.FailedPrecondition("event already resolved")))
}

func (s *ErrorsTestSuite) TestGetCodeOnForeignError() {
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	s.Assert().NoError(vb.Build())

	vb.RequiredField("Roller")
	vb.InvalidField("FleeChance", "must be between 0 and 1")
	err := vb.Build()
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Contains(err.Error(), "Roller")
}
