// Package postgres provides the PostgreSQL curriculum source. It handles
// connections, schema migrations and the mapping between curriculum_days
// rows and domain.CurriculumRecord values.
package postgres
