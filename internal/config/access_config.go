package config

import "github.com/chapterhq/portal-server/internal/utils"

const (
	councilAdminEmailsVar = "COUNCIL_ADMIN_EMAILS"
	siteAdminEmailsVar    = "SITE_ADMIN_EMAILS"
	// siteEditorEmailsVar is the legacy alias for siteAdminEmailsVar; it is
	// only consulted when SITE_ADMIN_EMAILS is unset.
	siteEditorEmailsVar = "SITE_EDITOR_EMAILS"
)

type Access struct{}

var _ AccessConfig = Access{}

func (Access) GetCouncilAdminEmails() []string {
	return utils.SplitEmailList(GetEnv(councilAdminEmailsVar, ""))
}

func (Access) GetSiteEditorEmails() []string {
	list := GetEnv(siteAdminEmailsVar, "")
	if list == "" {
		list = GetEnv(siteEditorEmailsVar, "")
	}
	return utils.SplitEmailList(list)
}
