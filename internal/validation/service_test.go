package validation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jmulders/veridose/internal/customer"
	"github.com/jmulders/veridose/internal/licence"
	"github.com/jmulders/veridose/internal/substance"
	"github.com/jmulders/veridose/internal/transaction"
	"github.com/jmulders/veridose/internal/validation"
)

type deps struct {
	customers  *validation.MockCustomerLookup
	substances *validation.MockSubstanceLookup
	resolver   *validation.MockClassificationResolver
	coverage   *validation.MockCoverageResolver
	thresholds *validation.MockThresholdEvaluator
	blocks     *validation.MockBlockChecker
	repo       *validation.MockRepository
}

func newService(ctrl *gomock.Controller, policy validation.Policy) (*validation.Service, deps) {
	d := deps{
		customers:  validation.NewMockCustomerLookup(ctrl),
		substances: validation.NewMockSubstanceLookup(ctrl),
		resolver:   validation.NewMockClassificationResolver(ctrl),
		coverage:   validation.NewMockCoverageResolver(ctrl),
		thresholds: validation.NewMockThresholdEvaluator(ctrl),
		blocks:     validation.NewMockBlockChecker(ctrl),
		repo:       validation.NewMockRepository(ctrl),
	}

	svc := validation.NewService(d.customers, d.substances, d.resolver, d.coverage, d.thresholds, d.blocks, d.repo, policy, nil)

	return svc, d
}

var testHolder = customer.HolderKey{Account: "C1001", Jurisdiction: "NL"}

func newTx(direction transaction.Direction, codes ...string) *transaction.Transaction {
	lines := make([]transaction.Line, 0, len(codes))
	for _, c := range codes {
		lines = append(lines, transaction.Line{SubstanceCode: c, Unit: "g"})
	}

	return &transaction.Transaction{
		ID:               uuid.New(),
		Reference:        "ORD-1",
		Holder:           testHolder,
		Direction:        direction,
		Lines:            lines,
		ValidationStatus: transaction.ValidationPending,
		OverrideStatus:   transaction.OverrideNone,
	}
}

func approvedCustomer() *customer.Customer {
	return &customer.Customer{
		Holder:           testHolder,
		Name:             "Apotheek De Brug",
		ApprovalStatus:   customer.ApprovalApproved,
		BusinessCategory: "pharmacy",
	}
}

func listIISubstance(code string) *substance.Substance {
	return &substance.Substance{
		Code:           code,
		Name:           code,
		Classification: substance.Classification{OpiumList: substance.OpiumListII, Precursor: substance.PrecursorNone},
		Active:         true,
	}
}

func validCover(activities ...licence.Activity) licence.Coverage {
	return licence.Coverage{
		Licence: &licence.Licence{
			ID:     uuid.New(),
			Number: "NL-OPW-001",
			Status: licence.StatusValid,
		},
		Mapping: &licence.SubstanceMapping{},
		Type:    &licence.Type{Code: "opium_exemption", Activities: activities},
	}
}

// setupLine wires the mocks for one passing line of a list II substance with a
// fully permitting cover.
func setupLine(d deps, code string) {
	sub := listIISubstance(code)
	d.substances.EXPECT().GetBySubstanceCode(gomock.Any(), code).Return(sub, nil)
	d.resolver.EXPECT().EffectiveClassification(gomock.Any(), code, gomock.Any()).
		Return(sub.Classification, nil, nil)
	d.coverage.EXPECT().FindCoveringLicences(gomock.Any(), testHolder, code, gomock.Any()).
		Return([]licence.Coverage{validCover(licence.ActivityDistribute, licence.ActivityPossess)}, nil)
}

func TestService_Validate_Passes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, d := newService(ctrl, validation.Policy{})
	tx := newTx(transaction.DirectionOutbound, "CODEINE")

	d.customers.EXPECT().GetByHolderKey(gomock.Any(), testHolder).Return(approvedCustomer(), nil)
	d.blocks.EXPECT().BlockedSubstances(gomock.Any(), testHolder).Return(map[string]struct{}{}, nil)
	setupLine(d, "CODEINE")
	d.thresholds.EXPECT().Evaluate(gomock.Any(), tx, "pharmacy", gomock.Any()).Return(nil, nil)
	d.repo.EXPECT().Update(gomock.Any(), tx).Return(nil)

	result, err := svc.Validate(context.Background(), tx)
	require.NoError(t, err)

	assert.Equal(t, transaction.ValidationPassed, result.Status)
	assert.True(t, result.CanProceed)
	assert.False(t, result.RequiresOverride)
	assert.Empty(t, result.Violations)
	require.Len(t, result.LicenceUsages, 1)
	assert.Equal(t, "NL-OPW-001", result.LicenceUsages[0].LicenceNumber)

	assert.Equal(t, transaction.ValidationPassed, tx.ValidationStatus)
	assert.Equal(t, transaction.OverrideNone, tx.OverrideStatus)
	assert.NotNil(t, tx.ValidatedAt)
}

func TestService_Validate_NoLines(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newService(ctrl, validation.Policy{})

	_, err := svc.Validate(context.Background(), &transaction.Transaction{Holder: testHolder})
	assert.ErrorIs(t, err, transaction.ErrNoLines)
}

func TestService_Validate_CustomerStates(t *testing.T) {
	type testCase struct {
		name            string
		setupCustomer   func(d deps)
		wantCode        string
		wantOverridable bool
	}

	tests := []testCase{
		{
			name: "NotRegistered",
			setupCustomer: func(d deps) {
				d.customers.EXPECT().GetByHolderKey(gomock.Any(), testHolder).Return(nil, customer.ErrNotFound)
			},
			wantCode:        validation.CodeCustomerNotFound,
			wantOverridable: false,
		},
		{
			name: "Suspended",
			setupCustomer: func(d deps) {
				cust := approvedCustomer()
				cust.Suspended = true
				cust.SuspensionReason = "GDP audit failed"
				d.customers.EXPECT().GetByHolderKey(gomock.Any(), testHolder).Return(cust, nil)
				d.blocks.EXPECT().BlockedSubstances(gomock.Any(), testHolder).Return(map[string]struct{}{}, nil)
			},
			wantCode:        validation.CodeCustomerSuspended,
			wantOverridable: false,
		},
		{
			name: "NotApproved",
			setupCustomer: func(d deps) {
				cust := approvedCustomer()
				cust.ApprovalStatus = customer.ApprovalPending
				d.customers.EXPECT().GetByHolderKey(gomock.Any(), testHolder).Return(cust, nil)
				d.blocks.EXPECT().BlockedSubstances(gomock.Any(), testHolder).Return(map[string]struct{}{}, nil)
			},
			wantCode:        validation.CodeCustomerNotApproved,
			wantOverridable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, d := newService(ctrl, validation.Policy{})
			tx := newTx(transaction.DirectionOutbound, "CODEINE")

			tt.setupCustomer(d)
			setupLine(d, "CODEINE")
			d.thresholds.EXPECT().Evaluate(gomock.Any(), tx, gomock.Any(), gomock.Any()).Return(nil, nil)
			d.repo.EXPECT().Update(gomock.Any(), tx).Return(nil)

			result, err := svc.Validate(context.Background(), tx)
			require.NoError(t, err)

			assert.Equal(t, transaction.ValidationFailed, result.Status)
			require.Len(t, result.Violations, 1)
			assert.Equal(t, tt.wantCode, result.Violations[0].Code)
			assert.Equal(t, tt.wantOverridable, result.Violations[0].Overridable)
			assert.Equal(t, tt.wantOverridable, result.RequiresOverride)

			if tt.wantOverridable {
				assert.Equal(t, transaction.OverridePending, tx.OverrideStatus)
			} else {
				assert.Equal(t, transaction.OverrideNone, tx.OverrideStatus)
				assert.False(t, result.CanProceed)
			}
		})
	}
}

func TestService_Validate_MissingLicenceOpensOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, d := newService(ctrl, validation.Policy{})
	tx := newTx(transaction.DirectionOutbound, "CODEINE")

	sub := listIISubstance("CODEINE")
	d.customers.EXPECT().GetByHolderKey(gomock.Any(), testHolder).Return(approvedCustomer(), nil)
	d.blocks.EXPECT().BlockedSubstances(gomock.Any(), testHolder).Return(map[string]struct{}{}, nil)
	d.substances.EXPECT().GetBySubstanceCode(gomock.Any(), "CODEINE").Return(sub, nil)
	d.resolver.EXPECT().EffectiveClassification(gomock.Any(), "CODEINE", gomock.Any()).
		Return(sub.Classification, nil, nil)
	d.coverage.EXPECT().FindCoveringLicences(gomock.Any(), testHolder, "CODEINE", gomock.Any()).
		Return(nil, nil)
	d.thresholds.EXPECT().Evaluate(gomock.Any(), tx, "pharmacy", gomock.Any()).Return(nil, nil)
	d.repo.EXPECT().Update(gomock.Any(), tx).Return(nil)

	result, err := svc.Validate(context.Background(), tx)
	require.NoError(t, err)

	assert.Equal(t, transaction.ValidationFailed, result.Status)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, validation.CodeLicenceMissing, result.Violations[0].Code)
	assert.True(t, result.RequiresOverride)
	assert.False(t, result.CanProceed)
	assert.Equal(t, transaction.OverridePending, tx.OverrideStatus)
}

func TestService_Validate_CoverFailures(t *testing.T) {
	expiry := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name            string
		status          licence.Status
		expiryDate      *time.Time
		wantCode        string
		wantOverridable bool
	}

	tests := []testCase{
		{
			name:            "Suspended",
			status:          licence.StatusSuspended,
			wantCode:        validation.CodeLicenceSuspended,
			wantOverridable: false,
		},
		{
			name:            "Revoked",
			status:          licence.StatusRevoked,
			wantCode:        validation.CodeLicenceRevoked,
			wantOverridable: false,
		},
		{
			name:            "Expired",
			status:          licence.StatusValid,
			expiryDate:      &expiry,
			wantCode:        validation.CodeLicenceExpired,
			wantOverridable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, d := newService(ctrl, validation.Policy{})
			tx := newTx(transaction.DirectionOutbound, "CODEINE")

			cover := validCover(licence.ActivityDistribute)
			cover.Licence.Status = tt.status
			cover.Licence.ExpiryDate = tt.expiryDate

			sub := listIISubstance("CODEINE")
			d.customers.EXPECT().GetByHolderKey(gomock.Any(), testHolder).Return(approvedCustomer(), nil)
			d.blocks.EXPECT().BlockedSubstances(gomock.Any(), testHolder).Return(map[string]struct{}{}, nil)
			d.substances.EXPECT().GetBySubstanceCode(gomock.Any(), "CODEINE").Return(sub, nil)
			d.resolver.EXPECT().EffectiveClassification(gomock.Any(), "CODEINE", gomock.Any()).
				Return(sub.Classification, nil, nil)
			d.coverage.EXPECT().FindCoveringLicences(gomock.Any(), testHolder, "CODEINE", gomock.Any()).
				Return([]licence.Coverage{cover}, nil)
			d.thresholds.EXPECT().Evaluate(gomock.Any(), tx, "pharmacy", gomock.Any()).Return(nil, nil)
			d.repo.EXPECT().Update(gomock.Any(), tx).Return(nil)

			result, err := svc.Validate(context.Background(), tx)
			require.NoError(t, err)

			assert.Equal(t, transaction.ValidationFailed, result.Status)
			require.Len(t, result.Violations, 1)
			assert.Equal(t, tt.wantCode, result.Violations[0].Code)
			assert.Equal(t, tt.wantOverridable, result.Violations[0].Overridable)
			assert.Empty(t, result.LicenceUsages)
		})
	}
}

func TestService_Validate_BlockedSubstance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, d := newService(ctrl, validation.Policy{})
	tx := newTx(transaction.DirectionOutbound, "CODEINE")

	d.customers.EXPECT().GetByHolderKey(gomock.Any(), testHolder).Return(approvedCustomer(), nil)
	d.blocks.EXPECT().BlockedSubstances(gomock.Any(), testHolder).
		Return(map[string]struct{}{"CODEINE": {}}, nil)
	setupLine(d, "CODEINE")
	d.thresholds.EXPECT().Evaluate(gomock.Any(), tx, "pharmacy", gomock.Any()).Return(nil, nil)
	d.repo.EXPECT().Update(gomock.Any(), tx).Return(nil)

	result, err := svc.Validate(context.Background(), tx)
	require.NoError(t, err)

	assert.Equal(t, transaction.ValidationFailed, result.Status)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, validation.CodeReQualificationRequired, result.Violations[0].Code)
	assert.True(t, result.Violations[0].Overridable)
	assert.True(t, result.RequiresOverride)
}

func TestService_Validate_ActivityMismatchPolicy(t *testing.T) {
	type testCase struct {
		name       string
		strict     bool
		wantStatus transaction.ValidationStatus
	}

	tests := []testCase{
		{name: "LenientWarns", strict: false, wantStatus: transaction.ValidationPassed},
		{name: "StrictViolates", strict: true, wantStatus: transaction.ValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, d := newService(ctrl, validation.Policy{StrictActivityCheck: tt.strict})
			tx := newTx(transaction.DirectionOutbound, "CODEINE")

			// Valid cover whose type only permits possession; an outbound
			// movement needs distribution.
			sub := listIISubstance("CODEINE")
			d.customers.EXPECT().GetByHolderKey(gomock.Any(), testHolder).Return(approvedCustomer(), nil)
			d.blocks.EXPECT().BlockedSubstances(gomock.Any(), testHolder).Return(map[string]struct{}{}, nil)
			d.substances.EXPECT().GetBySubstanceCode(gomock.Any(), "CODEINE").Return(sub, nil)
			d.resolver.EXPECT().EffectiveClassification(gomock.Any(), "CODEINE", gomock.Any()).
				Return(sub.Classification, nil, nil)
			d.coverage.EXPECT().FindCoveringLicences(gomock.Any(), testHolder, "CODEINE", gomock.Any()).
				Return([]licence.Coverage{validCover(licence.ActivityPossess)}, nil)
			d.thresholds.EXPECT().Evaluate(gomock.Any(), tx, "pharmacy", gomock.Any()).Return(nil, nil)
			d.repo.EXPECT().Update(gomock.Any(), tx).Return(nil)

			result, err := svc.Validate(context.Background(), tx)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, result.Status)

			if tt.strict {
				require.Len(t, result.Violations, 1)
				assert.Equal(t, validation.CodeLicenceActivityMismatch, result.Violations[0].Code)
				assert.Empty(t, result.Warnings)
			} else {
				assert.Empty(t, result.Violations)
				require.Len(t, result.Warnings, 1)
				assert.Equal(t, validation.CodeLicenceActivityMismatch, result.Warnings[0].Code)
			}

			// The cover is still used either way.
			assert.Len(t, result.LicenceUsages, 1)
		})
	}
}

func TestService_Validate_ThresholdBreach(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, d := newService(ctrl, validation.Policy{})
	tx := newTx(transaction.DirectionOutbound, "CODEINE")

	breach := transaction.Violation{Code: "THRESHOLD_TX_EXCEEDED", Overridable: true}

	d.customers.EXPECT().GetByHolderKey(gomock.Any(), testHolder).Return(approvedCustomer(), nil)
	d.blocks.EXPECT().BlockedSubstances(gomock.Any(), testHolder).Return(map[string]struct{}{}, nil)
	setupLine(d, "CODEINE")
	d.thresholds.EXPECT().Evaluate(gomock.Any(), tx, "pharmacy", gomock.Any()).
		Return([]transaction.Violation{breach}, nil)
	d.repo.EXPECT().Update(gomock.Any(), tx).Return(nil)

	result, err := svc.Validate(context.Background(), tx)
	require.NoError(t, err)

	assert.Equal(t, transaction.ValidationFailed, result.Status)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "THRESHOLD_TX_EXCEEDED", result.Violations[0].Code)
	assert.True(t, result.RequiresOverride)
}

func TestService_Validate_ApprovedOverrideSurvivesRevalidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, d := newService(ctrl, validation.Policy{})
	tx := newTx(transaction.DirectionOutbound, "CODEINE")
	tx.OverrideStatus = transaction.OverrideApproved

	sub := listIISubstance("CODEINE")
	d.customers.EXPECT().GetByHolderKey(gomock.Any(), testHolder).Return(approvedCustomer(), nil)
	d.blocks.EXPECT().BlockedSubstances(gomock.Any(), testHolder).Return(map[string]struct{}{}, nil)
	d.substances.EXPECT().GetBySubstanceCode(gomock.Any(), "CODEINE").Return(sub, nil)
	d.resolver.EXPECT().EffectiveClassification(gomock.Any(), "CODEINE", gomock.Any()).
		Return(sub.Classification, nil, nil)
	d.coverage.EXPECT().FindCoveringLicences(gomock.Any(), testHolder, "CODEINE", gomock.Any()).
		Return(nil, nil)
	d.thresholds.EXPECT().Evaluate(gomock.Any(), tx, "pharmacy", gomock.Any()).Return(nil, nil)
	d.repo.EXPECT().Update(gomock.Any(), tx).Return(nil)

	result, err := svc.Validate(context.Background(), tx)
	require.NoError(t, err)

	// The licence is still missing, but the approval already covers it.
	assert.Equal(t, transaction.ValidationFailed, result.Status)
	assert.Equal(t, transaction.OverrideApproved, tx.OverrideStatus)
	assert.True(t, result.CanProceed)
}

func TestService_Validate_PassedVerdictClearsPendingOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, d := newService(ctrl, validation.Policy{})
	tx := newTx(transaction.DirectionOutbound, "CODEINE")
	tx.OverrideStatus = transaction.OverridePending
	tx.Violations = []transaction.Violation{{Code: validation.CodeLicenceMissing, Overridable: true}}

	d.customers.EXPECT().GetByHolderKey(gomock.Any(), testHolder).Return(approvedCustomer(), nil)
	d.blocks.EXPECT().BlockedSubstances(gomock.Any(), testHolder).Return(map[string]struct{}{}, nil)
	setupLine(d, "CODEINE")
	d.thresholds.EXPECT().Evaluate(gomock.Any(), tx, "pharmacy", gomock.Any()).Return(nil, nil)
	d.repo.EXPECT().Update(gomock.Any(), tx).Return(nil)

	result, err := svc.Validate(context.Background(), tx)
	require.NoError(t, err)

	assert.Equal(t, transaction.ValidationPassed, result.Status)
	assert.Equal(t, transaction.OverrideNone, tx.OverrideStatus)
	assert.Empty(t, tx.Violations)
	assert.True(t, result.CanProceed)
}

func TestService_Validate_InboundRequiresPossession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, d := newService(ctrl, validation.Policy{StrictActivityCheck: true})
	tx := newTx(transaction.DirectionInbound, "CODEINE")

	// Distribution-only type cannot receive goods.
	sub := listIISubstance("CODEINE")
	d.customers.EXPECT().GetByHolderKey(gomock.Any(), testHolder).Return(approvedCustomer(), nil)
	d.blocks.EXPECT().BlockedSubstances(gomock.Any(), testHolder).Return(map[string]struct{}{}, nil)
	d.substances.EXPECT().GetBySubstanceCode(gomock.Any(), "CODEINE").Return(sub, nil)
	d.resolver.EXPECT().EffectiveClassification(gomock.Any(), "CODEINE", gomock.Any()).
		Return(sub.Classification, nil, nil)
	d.coverage.EXPECT().FindCoveringLicences(gomock.Any(), testHolder, "CODEINE", gomock.Any()).
		Return([]licence.Coverage{validCover(licence.ActivityDistribute)}, nil)
	d.thresholds.EXPECT().Evaluate(gomock.Any(), tx, "pharmacy", gomock.Any()).Return(nil, nil)
	d.repo.EXPECT().Update(gomock.Any(), tx).Return(nil)

	result, err := svc.Validate(context.Background(), tx)
	require.NoError(t, err)

	assert.Equal(t, transaction.ValidationFailed, result.Status)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, validation.CodeLicenceActivityMismatch, result.Violations[0].Code)
}
