// Package migration holds the dataset cache schema.
package migration

const Create = `
CREATE TABLE IF NOT EXISTS Dataset (
	digest TEXT NOT NULL PRIMARY KEY,
	created INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS Event (
	dataset TEXT NOT NULL,
	artist TEXT NOT NULL,
	track TEXT NOT NULL,
	album TEXT NOT NULL DEFAULT '',
	end_time INTEGER NOT NULL,
	ms_played INTEGER NOT NULL,
	FOREIGN KEY (dataset) REFERENCES Dataset (digest)
);

CREATE INDEX IF NOT EXISTS EventByDataset ON Event (dataset);
`
