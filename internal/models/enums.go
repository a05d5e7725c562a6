package models

// Genre - жанр истории.
type Genre string

const (
	GenreFantasy    Genre = "fantasy"
	GenreSciFi      Genre = "sci_fi"
	GenreRomance    Genre = "romance"
	GenreMystery    Genre = "mystery"
	GenreHorror     Genre = "horror"
	GenreThriller   Genre = "thriller"
	GenreHistorical Genre = "historical"
	GenreAdventure  Genre = "adventure"
	GenreOther      Genre = "other"
)

// Language - язык истории. По умолчанию используется zh.
type Language string

const (
	LanguageZH Language = "zh"
	LanguageEN Language = "en"
	LanguageJA Language = "ja"
	LanguageKO Language = "ko"
)

// DefaultLanguage применяется, когда язык истории не задан.
const DefaultLanguage = LanguageZH

// Gender - пол персонажа.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

// MBTIType - тип личности персонажа по MBTI.
type MBTIType string

const (
	MBTIISTJ MBTIType = "ISTJ"
	MBTIISTP MBTIType = "ISTP"
	MBTIISFJ MBTIType = "ISFJ"
	MBTIISFP MBTIType = "ISFP"
	MBTIINFJ MBTIType = "INFJ"
	MBTIINFP MBTIType = "INFP"
	MBTIINTJ MBTIType = "INTJ"
	MBTIINTP MBTIType = "INTP"
	MBTIESTJ MBTIType = "ESTJ"
	MBTIESTP MBTIType = "ESTP"
	MBTIESFJ MBTIType = "ESFJ"
	MBTIESFP MBTIType = "ESFP"
	MBTIENFJ MBTIType = "ENFJ"
	MBTIENFP MBTIType = "ENFP"
	MBTIENTJ MBTIType = "ENTJ"
	MBTIENTP MBTIType = "ENTP"
)

// LocationType - тип локации в мире истории.
type LocationType string

const (
	LocationCapital     LocationType = "capital"
	LocationCity        LocationType = "city"
	LocationTown        LocationType = "town"
	LocationVillage     LocationType = "village"
	LocationPalace      LocationType = "palace"
	LocationCastle      LocationType = "castle"
	LocationFortress    LocationType = "fortress"
	LocationTemple      LocationType = "temple"
	LocationTavern      LocationType = "tavern"
	LocationMarket      LocationType = "market"
	LocationForest      LocationType = "forest"
	LocationMountain    LocationType = "mountain"
	LocationValley      LocationType = "valley"
	LocationRiver       LocationType = "river"
	LocationLake        LocationType = "lake"
	LocationOcean       LocationType = "ocean"
	LocationDesert      LocationType = "desert"
	LocationCave        LocationType = "cave"
	LocationBattlefield LocationType = "battlefield"
	LocationCamp        LocationType = "camp"
	LocationRuins       LocationType = "ruins"
	LocationRoad        LocationType = "road"
	LocationBridge      LocationType = "bridge"
	LocationPort        LocationType = "port"
	LocationOtherPlace  LocationType = "other"
)

// RelationshipType - тип связи между двумя персонажами.
type RelationshipType string

const (
	RelationshipFamily    RelationshipType = "family"
	RelationshipFriend    RelationshipType = "friend"
	RelationshipEnemy     RelationshipType = "enemy"
	RelationshipLover     RelationshipType = "lover"
	RelationshipMentor    RelationshipType = "mentor"
	RelationshipStudent   RelationshipType = "student"
	RelationshipColleague RelationshipType = "colleague"
	RelationshipServant   RelationshipType = "servant"
	RelationshipRival     RelationshipType = "rival"
)

// SessionStatus - статус сессии генерации. Переходы: active -> closed -> archived.
type SessionStatus string

const (
	SessionStatusActive   SessionStatus = "active"
	SessionStatusClosed   SessionStatus = "closed"
	SessionStatusArchived SessionStatus = "archived"
)

// MessageRole - роль записи в логе сессии.
type MessageRole string

const (
	RoleUser       MessageRole = "user"
	RoleAgent      MessageRole = "agent"
	RoleSystem     MessageRole = "system"
	RoleToolCall   MessageRole = "tool_call"
	RoleToolOutput MessageRole = "tool_output"
	RoleThought    MessageRole = "thought"
)
