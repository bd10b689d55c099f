package postgres

// SQL statements for the com_statistics rollup table.
// Column names follow the historical schema: applic_cd, stat_name, stat_precision,
// stat_date, stat_count.

const (
	// queryIncrementStatistic creates the bucket row with count 1 or adds one to it.
	// The single INSERT ... ON CONFLICT statement is the atomicity guarantee:
	// concurrent increments of one bucket serialize on the primary key.
	queryIncrementStatistic = `
		INSERT INTO com_statistics (applic_cd, stat_name, stat_precision, stat_date, stat_count)
		VALUES ($1, $2, $3, $4, 1)
		ON CONFLICT (applic_cd, stat_name, stat_precision, stat_date)
		DO UPDATE SET stat_count = com_statistics.stat_count + 1
	`

	queryListApplicationCodes = `
		SELECT DISTINCT applic_cd
		FROM com_statistics
		ORDER BY applic_cd
	`

	// querySelectPrefix is completed with a date predicate, a precision clause and querySelectSuffix.
	querySelectPrefix = `
		SELECT applic_cd, stat_count, stat_precision, stat_name, stat_date
		FROM com_statistics
		WHERE applic_cd = $1 AND `

	querySelectSuffix = `
		ORDER BY stat_date, stat_precision`

	querySchemaExists = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = 'com_statistics'
		)
	`
)
