package schema

import "strconv"

// TableName is the table both the repository and the reconciler operate on
const TableName = "Technicians"

// Column is one declarative catalog entry: a column name plus its
// type-and-default DDL fragment per supported dialect. The reconciler
// treats the catalog purely as data; callers may supply their own.
type Column struct {
	Name     string
	Postgres string
	SQLite   string
}

// Common type fragments. The catalog descends from a shared base schema
// used across many modules, so most entries repeat a handful of shapes.
var (
	typeBigint    = pair{"BIGINT NULL", "INTEGER"}
	typeInt0      = pair{"INTEGER NULL DEFAULT 0", "INTEGER DEFAULT 0"}
	typeInt1      = pair{"INTEGER NULL DEFAULT 1", "INTEGER DEFAULT 1"}
	typeBool0     = pair{"BOOLEAN NULL DEFAULT FALSE", "INTEGER DEFAULT 0"}
	typeSmallint0 = pair{"SMALLINT NULL DEFAULT 0", "INTEGER DEFAULT 0"}
	typeText      = pair{"TEXT NULL", "TEXT"}
	typeUUID      = pair{"UUID NULL", "TEXT"}
	typeTimeTZ    = pair{"TIMESTAMPTZ NULL", "TIMESTAMP"}
	typeTimeNow   = pair{"TIMESTAMPTZ NULL DEFAULT now()", "TIMESTAMP DEFAULT CURRENT_TIMESTAMP"}
)

type pair struct {
	postgres string
	sqlite   string
}

func varchar(n int) pair {
	return pair{postgres: "VARCHAR(" + itoa(n) + ") NULL", sqlite: "TEXT"}
}

func varcharDefault(n int, def string) pair {
	return pair{
		postgres: "VARCHAR(" + itoa(n) + ") NULL DEFAULT '" + def + "'",
		sqlite:   "TEXT DEFAULT '" + def + "'",
	}
}

func numeric(precision, scale int, def string) pair {
	p := "NUMERIC(" + itoa(precision) + "," + itoa(scale) + ")"
	return pair{
		postgres: p + " NULL DEFAULT " + def,
		sqlite:   "NUMERIC DEFAULT " + def,
	}
}

func col(name string, t pair) Column {
	return Column{Name: name, Postgres: t.postgres, SQLite: t.sqlite}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// PrimaryColumns is the column set a fresh table is created with
func PrimaryColumns() []Column {
	return []Column{
		{Name: "Id", Postgres: "BIGSERIAL PRIMARY KEY", SQLite: "INTEGER PRIMARY KEY AUTOINCREMENT"},
		{Name: "Active", Postgres: "BOOLEAN NULL DEFAULT TRUE", SQLite: "INTEGER DEFAULT 1"},
		{Name: "IsDeleted", Postgres: "BOOLEAN NOT NULL DEFAULT FALSE", SQLite: "INTEGER NOT NULL DEFAULT 0"},
		{Name: "Created", Postgres: "TIMESTAMPTZ NOT NULL", SQLite: "TIMESTAMP NOT NULL"},
		{Name: "CreatedBy", Postgres: "VARCHAR(255) NULL", SQLite: "TEXT"},
		{Name: "Name", Postgres: "TEXT NULL", SQLite: "TEXT"},
		{Name: "DisplayOrder", Postgres: "INTEGER NULL DEFAULT 0", SQLite: "INTEGER DEFAULT 0"},
	}
}

// DefaultCatalog is the extended column superset shared with the sibling
// modules built on the same base schema. Additions are idempotent and
// order-independent; entries already covered by PrimaryColumns are simply
// found present and skipped at runtime.
func DefaultCatalog() []Column {
	return []Column{
		col("ParentId", typeBigint),
		col("ParentKey", varchar(255)),
		col("CreatedBy", varchar(255)),
		col("Created", typeTimeNow),
		col("ModifiedBy", varchar(255)),
		col("Modified", typeTimeTZ),
		col("Name", varchar(255)),
		col("PostDate", typeTimeNow),
		col("PostIp", varchar(20)),
		col("Title", varchar(512)),
		col("Content", typeText),
		col("Category", varcharDefault(255, "Free")),
		col("Email", varchar(255)),
		col("Password", varchar(255)),
		col("ReadCount", typeInt0),
		col("Encoding", varcharDefault(20, "HTML")),
		col("Homepage", varchar(100)),
		col("ModifyDate", typeTimeTZ),
		col("ModifyIp", varchar(15)),
		col("CommentCount", typeInt0),
		col("IsPinned", typeBool0),
		col("FileName", varchar(255)),
		col("FileSize", typeInt0),
		col("DownCount", typeInt0),
		col("Ref", typeInt0),
		col("Step", typeInt0),
		col("RefOrder", typeInt0),
		col("AnswerNum", typeInt0),
		col("ParentNum", typeInt0),
		col("Status", varchar(255)),
		col("TenantId", pair{"BIGINT NULL DEFAULT 0", "INTEGER DEFAULT 0"}),
		col("TenantName", varchar(255)),
		col("AppId", typeInt0),
		col("AppName", varchar(255)),
		col("ModuleId", typeInt0),
		col("ModuleName", varchar(255)),
		col("IsLocked", typeBool0),
		col("Vote", typeInt0),
		col("Weather", typeSmallint0),
		col("ReplyEmail", typeBool0),
		col("Published", typeBool0),
		col("BoardType", varchar(100)),
		col("BoardName", varchar(255)),
		col("NickName", varchar(255)),
		col("IconName", varchar(100)),
		col("Price", numeric(18, 2, "0.00")),
		col("Community", varchar(255)),
		col("StartDate", typeTimeTZ),
		col("EndDate", typeTimeTZ),
		col("Video", varchar(1024)),
		col("SecurityLevel", varchar(10)),
		col("AvailableCustomerLevel", varchar(10)),
		col("Num", typeInt0),
		col("UID", typeInt0),
		col("UserId", varchar(255)),
		col("UserName", varchar(255)),
		col("DivisionId", typeInt0),
		col("CategoryId", typeInt0),
		col("BoardId", typeInt0),
		col("ApplicationId", typeInt0),
		col("IsDeleted", typeBool0),
		col("DeletedBy", varchar(255)),
		col("Deleted", typeTimeTZ),
		col("ApprovalStatus", varchar(50)),
		col("ApprovalBy", varchar(255)),
		col("ApprovalDate", typeTimeTZ),
		col("UserAgent", varchar(512)),
		col("Referer", varchar(512)),
		col("SessionId", varchar(255)),
		col("DisplayOrder", typeInt0),
		col("ViewRoles", varchar(255)),
		col("Tags", varchar(255)),
		col("LikeCount", typeInt0),
		col("DislikeCount", typeInt0),
		col("Rating", numeric(3, 2, "0.0")),
		col("Culture", varchar(10)),
		col("IsSystem", typeBool0),
		col("SearchKeywords", varchar(1024)),
		col("SortKey", varchar(255)),
		col("Version", typeInt1),
		col("HistoryGroupId", typeUUID),
		col("IsNotified", typeBool0),
		col("IsSubscribed", typeBool0),
		col("ExternalId", varchar(255)),
		col("ExternalUrl", varchar(1024)),
		col("SourceType", varchar(50)),
		col("IsMobile", typeBool0),
	}
}
