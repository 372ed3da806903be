package dto

import (
	"testing"

	"github.com/stretchr/testify/require"

	gradeModel "schoolsync_backend/internals/features/school/grades/model"
)

func fp(v float64) *float64 { return &v }

func TestDeriveFinalExplicitWins(t *testing.T) {
	m := &gradeModel.GradeModel{
		GradeQuarter1: fp(90), GradeQuarter2: fp(90),
		GradeQuarter3: fp(90), GradeQuarter4: fp(90),
	}
	DeriveFinal(m, fp(70))
	require.NotNil(t, m.GradeFinal)
	require.Equal(t, 70.0, *m.GradeFinal)
}

func TestDeriveFinalMeanOfQuarters(t *testing.T) {
	m := &gradeModel.GradeModel{
		GradeQuarter1: fp(80), GradeQuarter2: fp(85),
		GradeQuarter3: fp(90), GradeQuarter4: fp(78),
	}
	DeriveFinal(m, nil)
	require.NotNil(t, m.GradeFinal)
	require.Equal(t, 83.25, *m.GradeFinal)
}

func TestDeriveFinalRoundsToTwoDecimals(t *testing.T) {
	m := &gradeModel.GradeModel{
		GradeQuarter1: fp(80), GradeQuarter2: fp(81),
		GradeQuarter3: fp(81), GradeQuarter4: fp(80.5),
	}
	DeriveFinal(m, nil)
	require.NotNil(t, m.GradeFinal)
	require.Equal(t, 80.63, *m.GradeFinal)
}

func TestDeriveFinalMissingQuarterLeavesFinal(t *testing.T) {
	m := &gradeModel.GradeModel{
		GradeQuarter1: fp(80), GradeQuarter2: fp(85),
	}
	DeriveFinal(m, nil)
	require.Nil(t, m.GradeFinal)

	prior := fp(88)
	m.GradeFinal = prior
	DeriveFinal(m, nil)
	require.Equal(t, prior, m.GradeFinal)
}

func TestRemark(t *testing.T) {
	require.Equal(t, "Pending", Remark(nil))
	require.Equal(t, "Passed", Remark(fp(75)))
	require.Equal(t, "Passed", Remark(fp(92.5)))
	require.Equal(t, "Failed", Remark(fp(74.99)))
}
