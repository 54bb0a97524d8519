package auth

// Permission names understood by the platform. Values are persisted and must not change.
const (
	PermManageProject              = "manage_project"
	PermEnablePreviewMode          = "enable_preview_mode"
	PermSendEmail                  = "send_email"
	PermExportData                 = "export_data"
	PermManageSettings             = "manage_settings"
	PermApproveRequests            = "approve_requests"
	PermCreateUser                 = "create_user"
	PermReadUser                   = "read_user"
	PermUpdateUser                 = "update_user"
	PermSelfUpdateUser             = "self_update_user"
	PermDeleteUser                 = "delete_user"
	PermManageAnyFinancer          = "manage_any_financer"
	PermManageFinancerModules      = "manage_financer_modules"
	PermManageFinancer             = "manage_financer"
	PermCreateFinancer             = "create_financer"
	PermReadAnyFinancer            = "read_any_financer"
	PermReadOwnFinancer            = "read_own_financer"
	PermUpdateFinancer             = "update_financer"
	PermDeleteFinancer             = "delete_financer"
	PermViewFinancerMetrics        = "view_financer_metrics"
	PermManageDivisionModules      = "manage_division_modules"
	PermManageDivision             = "manage_division"
	PermCreateDivision             = "create_division"
	PermReadDivision               = "read_division"
	PermUpdateDivision             = "update_division"
	PermDeleteDivision             = "delete_division"
	PermCreateTeam                 = "create_team"
	PermReadTeam                   = "read_team"
	PermUpdateTeam                 = "update_team"
	PermDeleteTeam                 = "delete_team"
	PermCreateRole                 = "create_role"
	PermReadRole                   = "read_role"
	PermUpdateRole                 = "update_role"
	PermDeleteRole                 = "delete_role"
	PermManageUserRoles            = "manage_user_roles"
	PermAssignRoles                = "assign_roles"
	PermRevokeRoles                = "revoke_roles"
	PermAddPermissionToRole        = "add_permission_to_role"
	PermRemovePermissionFromRole   = "remove_permission_from_role"
	PermCreatePermission           = "create_permission"
	PermReadPermission             = "read_permission"
	PermUpdatePermission           = "update_permission"
	PermDeletePermission           = "delete_permission"
	PermManagePermissions          = "manage_permissions"
	PermCreateModule               = "create_module"
	PermReadModule                 = "read_module"
	PermUpdateModule               = "update_module"
	PermPinModule                  = "pin_module"
	PermDeleteModule               = "delete_module"
	PermCreateIntegration          = "create_integration"
	PermUseIntegration             = "use_integration"
	PermUpdateIntegration          = "update_integration"
	PermDeleteIntegration          = "delete_integration"
	PermCreateHRTools              = "create_hr_tools"
	PermUpdateHRTools              = "update_hr_tools"
	PermReadHRTools                = "read_hr_tools"
	PermDeleteHRTools              = "delete_hr_tools"
	PermCreateArticle              = "create_article"
	PermReadArticle                = "read_article"
	PermUpdateArticle              = "update_article"
	PermDeleteArticle              = "delete_article"
	PermViewDraftArticle           = "view_draft_article"
	PermCreateVoucher              = "create_voucher"
	PermViewVoucherOrders          = "vouchers_amilon_orders_view"
	PermRetryVoucherOrders         = "vouchers_amilon_orders_retry"
	PermViewVoucherStatistics      = "vouchers_amilon_statistics_view"
	PermReadTrads                  = "read.trads"
	PermCreateTrads                = "create.trads"
	PermUpdateTrads                = "update.trads"
	PermDeleteTrads                = "delete.trads"
	PermSyncTrads                  = "sync.trads"
	PermReadAnswer                 = "read_answer"
	PermCreateAnswer               = "create_answer"
	PermUpdateAnswer               = "update_answer"
	PermDeleteAnswer               = "delete_answer"
	PermManageFinancerAnswers      = "manage_financer_answers"
	PermReadSurvey                 = "read_survey"
	PermCreateSurvey               = "create_survey"
	PermUpdateSurvey               = "update_survey"
	PermDeleteSurvey               = "delete_survey"
	PermReadQuestion               = "read_question"
	PermCreateQuestion             = "create_question"
	PermUpdateQuestion             = "update_question"
	PermDeleteQuestion             = "delete_question"
	PermReadQuestionnaire          = "read_questionnaire"
	PermCreateQuestionnaire        = "create_questionnaire"
	PermUpdateQuestionnaire        = "update_questionnaire"
	PermDeleteQuestionnaire        = "delete_questionnaire"
	PermReadSubmission             = "read_submission"
	PermCreateSubmission           = "create_submission"
	PermUpdateSubmission           = "update_submission"
	PermDeleteSubmission           = "delete_submission"
	PermManageFinancerSubmissions  = "manage_financer_submissions"
	PermReadTheme                  = "read_theme"
	PermCreateTheme                = "create_theme"
	PermUpdateTheme                = "update_theme"
	PermDeleteTheme                = "delete_theme"
	PermManageTranslations         = "manage.translations"
	PermReadDepartment             = "read_department"
	PermCreateDepartment           = "create_department"
	PermUpdateDepartment           = "update_department"
	PermDeleteDepartment           = "delete_department"
	PermReadSite                   = "read_site"
	PermCreateSite                 = "create_site"
	PermUpdateSite                 = "update_site"
	PermDeleteSite                 = "delete_site"
	PermReadContractType           = "read_contract_type"
	PermCreateContractType         = "create_contract_type"
	PermUpdateContractType         = "update_contract_type"
	PermDeleteContractType         = "delete_contract_type"
	PermReadTag                    = "read_tag"
	PermCreateTag                  = "create_tag"
	PermUpdateTag                  = "update_tag"
	PermDeleteTag                  = "delete_tag"
	PermReadWorkMode               = "read_work_mode"
	PermCreateWorkMode             = "create_work_mode"
	PermUpdateWorkMode             = "update_work_mode"
	PermDeleteWorkMode             = "delete_work_mode"
	PermReadJobTitle               = "read_job_title"
	PermCreateJobTitle             = "create_job_title"
	PermUpdateJobTitle             = "update_job_title"
	PermDeleteJobTitle             = "delete_job_title"
	PermReadJobLevel               = "read_job_level"
	PermCreateJobLevel             = "create_job_level"
	PermUpdateJobLevel             = "update_job_level"
	PermDeleteJobLevel             = "delete_job_level"
	PermReadSegment                = "read_segment"
	PermCreateSegment              = "create_segment"
	PermUpdateSegment              = "update_segment"
	PermDeleteSegment              = "delete_segment"
	PermReadInvoiceDivision        = "read_invoice_division"
	PermCreateInvoiceDivision      = "create_invoice_division"
	PermUpdateInvoiceDivision      = "update_invoice_division"
	PermDeleteInvoiceDivision      = "delete_invoice_division"
	PermConfirmInvoiceDivision     = "confirm_invoice_division"
	PermMarkInvoiceSentDivision    = "mark_invoice_sent_division"
	PermMarkInvoicePaidDivision    = "mark_invoice_paid_division"
	PermSendInvoiceEmailDivision   = "send_invoice_email_division"
	PermDownloadInvoicePDFDivision = "download_invoice_pdf_division"
	PermExportInvoiceDivision      = "export_invoice_division"
	PermManageInvoiceItemsDivision = "manage_invoice_items_division"
	PermExportUserBillingDivision  = "export_user_billing_division"
	PermReadInvoiceFinancer        = "read_invoice_financer"
	PermDownloadInvoicePDFFinancer = "download_invoice_pdf_financer"
	PermExportUserBillingFinancer  = "export_user_billing_financer"
	PermCreateInvoiceFinancer      = "create_invoice_financer"
	PermUpdateInvoiceFinancer      = "update_invoice_financer"
	PermDeleteInvoiceFinancer      = "delete_invoice_financer"
	PermConfirmInvoiceFinancer     = "confirm_invoice_financer"
	PermMarkInvoiceSentFinancer    = "mark_invoice_sent_financer"
	PermMarkInvoicePaidFinancer    = "mark_invoice_paid_financer"
	PermSendInvoiceEmailFinancer   = "send_invoice_email_financer"
	PermExportInvoiceFinancer      = "export_invoice_financer"
	PermManageInvoiceItemsFinancer = "manage_invoice_items_financer"
)

// AllPermissions lists every permission in declaration order.
var AllPermissions = []string{
	PermManageProject,
	PermEnablePreviewMode,
	PermSendEmail,
	PermExportData,
	PermManageSettings,
	PermApproveRequests,
	PermCreateUser,
	PermReadUser,
	PermUpdateUser,
	PermSelfUpdateUser,
	PermDeleteUser,
	PermManageAnyFinancer,
	PermManageFinancerModules,
	PermManageFinancer,
	PermCreateFinancer,
	PermReadAnyFinancer,
	PermReadOwnFinancer,
	PermUpdateFinancer,
	PermDeleteFinancer,
	PermViewFinancerMetrics,
	PermManageDivisionModules,
	PermManageDivision,
	PermCreateDivision,
	PermReadDivision,
	PermUpdateDivision,
	PermDeleteDivision,
	PermCreateTeam,
	PermReadTeam,
	PermUpdateTeam,
	PermDeleteTeam,
	PermCreateRole,
	PermReadRole,
	PermUpdateRole,
	PermDeleteRole,
	PermManageUserRoles,
	PermAssignRoles,
	PermRevokeRoles,
	PermAddPermissionToRole,
	PermRemovePermissionFromRole,
	PermCreatePermission,
	PermReadPermission,
	PermUpdatePermission,
	PermDeletePermission,
	PermManagePermissions,
	PermCreateModule,
	PermReadModule,
	PermUpdateModule,
	PermPinModule,
	PermDeleteModule,
	PermCreateIntegration,
	PermUseIntegration,
	PermUpdateIntegration,
	PermDeleteIntegration,
	PermCreateHRTools,
	PermUpdateHRTools,
	PermReadHRTools,
	PermDeleteHRTools,
	PermCreateArticle,
	PermReadArticle,
	PermUpdateArticle,
	PermDeleteArticle,
	PermViewDraftArticle,
	PermCreateVoucher,
	PermViewVoucherOrders,
	PermRetryVoucherOrders,
	PermViewVoucherStatistics,
	PermReadTrads,
	PermCreateTrads,
	PermUpdateTrads,
	PermDeleteTrads,
	PermSyncTrads,
	PermReadAnswer,
	PermCreateAnswer,
	PermUpdateAnswer,
	PermDeleteAnswer,
	PermManageFinancerAnswers,
	PermReadSurvey,
	PermCreateSurvey,
	PermUpdateSurvey,
	PermDeleteSurvey,
	PermReadQuestion,
	PermCreateQuestion,
	PermUpdateQuestion,
	PermDeleteQuestion,
	PermReadQuestionnaire,
	PermCreateQuestionnaire,
	PermUpdateQuestionnaire,
	PermDeleteQuestionnaire,
	PermReadSubmission,
	PermCreateSubmission,
	PermUpdateSubmission,
	PermDeleteSubmission,
	PermManageFinancerSubmissions,
	PermReadTheme,
	PermCreateTheme,
	PermUpdateTheme,
	PermDeleteTheme,
	PermManageTranslations,
	PermReadDepartment,
	PermCreateDepartment,
	PermUpdateDepartment,
	PermDeleteDepartment,
	PermReadSite,
	PermCreateSite,
	PermUpdateSite,
	PermDeleteSite,
	PermReadContractType,
	PermCreateContractType,
	PermUpdateContractType,
	PermDeleteContractType,
	PermReadTag,
	PermCreateTag,
	PermUpdateTag,
	PermDeleteTag,
	PermReadWorkMode,
	PermCreateWorkMode,
	PermUpdateWorkMode,
	PermDeleteWorkMode,
	PermReadJobTitle,
	PermCreateJobTitle,
	PermUpdateJobTitle,
	PermDeleteJobTitle,
	PermReadJobLevel,
	PermCreateJobLevel,
	PermUpdateJobLevel,
	PermDeleteJobLevel,
	PermReadSegment,
	PermCreateSegment,
	PermUpdateSegment,
	PermDeleteSegment,
	PermReadInvoiceDivision,
	PermCreateInvoiceDivision,
	PermUpdateInvoiceDivision,
	PermDeleteInvoiceDivision,
	PermConfirmInvoiceDivision,
	PermMarkInvoiceSentDivision,
	PermMarkInvoicePaidDivision,
	PermSendInvoiceEmailDivision,
	PermDownloadInvoicePDFDivision,
	PermExportInvoiceDivision,
	PermManageInvoiceItemsDivision,
	PermExportUserBillingDivision,
	PermReadInvoiceFinancer,
	PermDownloadInvoicePDFFinancer,
	PermExportUserBillingFinancer,
	PermCreateInvoiceFinancer,
	PermUpdateInvoiceFinancer,
	PermDeleteInvoiceFinancer,
	PermConfirmInvoiceFinancer,
	PermMarkInvoiceSentFinancer,
	PermMarkInvoicePaidFinancer,
	PermSendInvoiceEmailFinancer,
	PermExportInvoiceFinancer,
	PermManageInvoiceItemsFinancer,
}

// protectedPermissions cannot be granted through the admin panel; only roles
// seeded here carry them.
var protectedPermissions = map[string]bool{
	PermCreateRole:        true,
	PermUpdateRole:        true,
	PermDeleteRole:        true,
	PermCreatePermission:  true,
	PermUpdatePermission:  true,
	PermDeletePermission:  true,
	PermManagePermissions: true,
}

// DefaultPermissions returns the bootstrap definitions for every permission.
func DefaultPermissions() []PermissionDef {
	defs := make([]PermissionDef, 0, len(AllPermissions))
	for _, name := range AllPermissions {
		defs = append(defs, PermissionDef{Name: name, IsProtected: protectedPermissions[name]})
	}
	return defs
}
