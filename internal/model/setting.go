package model

type Setting struct {
	ID    string `db:"id" json:"id"`
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
}

const SettingKeyNotificationEmails = "notification_emails"
