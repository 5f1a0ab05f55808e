package models

// ProfileExportRow строка дневной выгрузки профилей в BigQuery.
// Схема повторяет таблицу user_profile_daily в аналитическом хранилище.
type ProfileExportRow struct {
	EventDate   string `bigquery:"event_date"`
	UserID      *int64 `bigquery:"user_id"`
	JobGroup    string `bigquery:"job_group"`
	Job         string `bigquery:"job"`
	Experience  int    `bigquery:"experience"`
	Age         *int   `bigquery:"age"`
	SaveRate    *int   `bigquery:"save_rate"`
	HasCar      *bool  `bigquery:"has_car"`
	MonthlyRent *bool  `bigquery:"monthly_rent"`
}

// OnboardingRecipient адресат приветственного письма.
type OnboardingRecipient struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}
