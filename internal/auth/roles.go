package auth

import "github.com/go-faster/errors"


const (
	RoleGod                = "god"
	RoleHexekoSuperAdmin   = "hexeko_super_admin"
	RoleHexekoAdmin        = "hexeko_admin"
	RoleDivisionSuperAdmin = "division_super_admin"
	RoleDivisionAdmin      = "division_admin"
	RoleFinancerSuperAdmin = "financer_super_admin"
	RoleFinancerAdmin      = "financer_admin"
	RoleBeneficiary        = "beneficiary"
)

// AllRoles lists roles from most to least privileged.
var AllRoles = []string{
	RoleGod,
	RoleHexekoSuperAdmin,
	RoleHexekoAdmin,
	RoleDivisionSuperAdmin,
	RoleDivisionAdmin,
	RoleFinancerSuperAdmin,
	RoleFinancerAdmin,
	RoleBeneficiary,
}

// protectedRoles cannot be edited from the admin panel.
var protectedRoles = map[string]bool{
	RoleGod:              true,
	RoleHexekoSuperAdmin: true,
}

type roleGrant struct {
	everything bool
	inherits   string
	extra      []string
}

var roleGrants = map[string]roleGrant{
	RoleGod: {
		everything: true,
		extra:      []string{PermCreateRole, PermUpdateRole, PermDeleteRole},
	},
	RoleHexekoSuperAdmin: {
		everything: true,
		extra:      []string{PermManageDivisionModules},
	},
	RoleHexekoAdmin: {
		inherits: RoleDivisionSuperAdmin,
		extra: []string{
			PermManageProject, PermSendEmail, PermExportData, PermManageSettings, PermApproveRequests,
			PermCreateDivision, PermDeleteDivision,
			PermCreateTeam, PermReadTeam, PermUpdateTeam, PermDeleteTeam,
			PermReadPermission,
			PermCreateModule, PermReadModule, PermUpdateModule, PermDeleteModule,
			PermReadTrads, PermCreateTrads, PermUpdateTrads, PermDeleteTrads, PermSyncTrads,
			PermCreateIntegration, PermDeleteIntegration,
			PermReadRole,
			PermManageAnyFinancer,
			PermCreateInvoiceDivision, PermUpdateInvoiceDivision, PermDeleteInvoiceDivision,
			PermConfirmInvoiceDivision, PermMarkInvoiceSentDivision, PermMarkInvoicePaidDivision,
			PermSendInvoiceEmailDivision,
		},
	},
	RoleDivisionSuperAdmin: {
		inherits: RoleDivisionAdmin,
		extra:    []string{PermDeleteFinancer, PermManageFinancerModules},
	},
	RoleDivisionAdmin: {
		inherits: RoleFinancerSuperAdmin,
		extra: []string{
			PermEnablePreviewMode,
			PermUpdateDivision,
			PermManageFinancer, PermReadAnyFinancer, PermCreateFinancer, PermUpdateFinancer,
			PermReadInvoiceDivision, PermDownloadInvoicePDFDivision, PermExportInvoiceDivision,
			PermManageInvoiceItemsDivision, PermExportUserBillingDivision,
			PermCreateInvoiceFinancer, PermUpdateInvoiceFinancer, PermDeleteInvoiceFinancer,
			PermConfirmInvoiceFinancer, PermMarkInvoiceSentFinancer, PermMarkInvoicePaidFinancer,
			PermSendInvoiceEmailFinancer, PermManageInvoiceItemsFinancer,
		},
	},
	RoleFinancerSuperAdmin: {
		inherits: RoleFinancerAdmin,
		extra: []string{
			PermReadInvoiceFinancer, PermDownloadInvoicePDFFinancer, PermExportUserBillingFinancer, PermExportInvoiceFinancer,
			PermCreateUser, PermUpdateUser, PermDeleteUser,
			PermAssignRoles, PermRevokeRoles, PermManageUserRoles,
			PermManageSettings,
		},
	},
	RoleFinancerAdmin: {
		inherits: RoleBeneficiary,
		extra: []string{
			PermUpdateFinancer,
			PermViewFinancerMetrics,
			PermReadUser,
			PermReadHRTools, PermCreateHRTools, PermUpdateHRTools, PermDeleteHRTools,
			PermReadArticle, PermCreateArticle, PermUpdateArticle, PermDeleteArticle, PermViewDraftArticle,
			PermUpdateIntegration,
			PermCreateDepartment, PermUpdateDepartment, PermDeleteDepartment,
			PermCreateSite, PermUpdateSite, PermDeleteSite,
			PermCreateContractType, PermUpdateContractType, PermDeleteContractType,
			PermCreateTag, PermUpdateTag, PermDeleteTag,
			PermCreateWorkMode, PermUpdateWorkMode, PermDeleteWorkMode,
			PermCreateJobTitle, PermUpdateJobTitle, PermDeleteJobTitle,
			PermCreateJobLevel, PermUpdateJobLevel, PermDeleteJobLevel,
			PermCreateSegment, PermUpdateSegment, PermDeleteSegment, PermReadSegment,
			// engagement
			PermManageFinancerAnswers, PermManageFinancerSubmissions,
			PermCreateSurvey, PermUpdateSurvey, PermDeleteSurvey,
			PermCreateQuestion, PermUpdateQuestion, PermDeleteQuestion,
			PermReadQuestionnaire, PermCreateQuestionnaire, PermUpdateQuestionnaire, PermDeleteQuestionnaire,
			PermCreateTheme, PermUpdateTheme, PermDeleteTheme,
			// invoices
			PermReadInvoiceFinancer, PermDownloadInvoicePDFFinancer, PermExportUserBillingFinancer, PermExportInvoiceFinancer,
		},
	},
	RoleBeneficiary: {
		extra: []string{
			PermReadArticle,
			PermReadOwnFinancer,
			PermReadHRTools,
			PermUseIntegration,
			PermPinModule,
			PermSelfUpdateUser,
			PermReadModule,
			PermCreateVoucher, PermViewVoucherOrders, PermRetryVoucherOrders,
			PermReadDepartment, PermReadSite, PermReadContractType, PermReadTag,
			PermReadWorkMode, PermReadJobTitle, PermReadJobLevel,
			// engagement
			PermReadAnswer, PermCreateAnswer, PermUpdateAnswer, PermDeleteAnswer,
			PermReadSurvey,
			PermReadSubmission, PermCreateSubmission, PermUpdateSubmission, PermDeleteSubmission,
			PermReadQuestion,
			PermReadTheme,
		},
	},
}

// IsRole reports whether name is one of the built-in roles.
func IsRole(name string) bool {
	_, ok := roleGrants[name]
	return ok
}

// PermissionsForRole resolves the role's effective permission list, inherited
// permissions first, without duplicates.
func PermissionsForRole(role string) ([]string, error) {
	grant, ok := roleGrants[role]
	if !ok {
		return nil, errors.Errorf("%w: role %q", ErrNotFound, role)
	}
	var perms []string
	switch {
	case grant.everything:
		perms = append(perms, AllPermissions...)
	case grant.inherits != "":
		inherited, err := PermissionsForRole(grant.inherits)
		if err != nil {
			return nil, err
		}
		perms = append(perms, inherited...)
	}
	perms = append(perms, grant.extra...)
	return dedupeStrings(perms), nil
}

// DefaultRolePermissions maps every built-in role to its effective permissions.
func DefaultRolePermissions() map[string][]string {
	out := make(map[string][]string, len(AllRoles))
	for _, role := range AllRoles {
		perms, err := PermissionsForRole(role)
		if err != nil {
			panic(err)
		}
		out[role] = perms
	}
	return out
}
