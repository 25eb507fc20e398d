package config

// Virtual screen - every simulation coordinate lives in this space.
const (
	ScreenWidth  = 960
	ScreenHeight = 640
)

// Player
const (
	PlayerWidth      = 44
	PlayerHeight     = 54
	PlayerY          = ScreenHeight / 2
	PlayerBaseSpeed  = 4.0 // Units per tick
	PlayerEdgeMargin = 10.0
	BoostMultiplier  = 1.8
	SlowMultiplier   = 0.6
	SwayAmplitude    = 1.5
	SwayFrequency    = 20.0 // Radians per second of player clock
)

// Timed effects (seconds)
const (
	RockSlowSeconds    = 1.2
	DropSlowSeconds    = 2.0
	BoostSeconds       = 2.8
	InvertSeconds      = 3.0
	YetiSlowSeconds    = 2.8
	YetiKnockbackSecs  = 0.6
	YetiReverseSeconds = 3.0
)

// Course entities
const (
	RockWidth, RockHeight        = 32, 26
	DropWidth, DropHeight        = 22, 22
	TreeWidth, TreeHeight        = 48, 72
	SpeedBonusWidth              = 26
	InvertBonusWidth             = 24
	RockSpawnY                   = -60.0
	BonusSpawnY                  = -40.0
	GateSpawnY                   = -80.0
	RockFallExtra                = 30.0
	DropFallExtra                = 50.0
	CourseFallExtra              = 30.0
	RockDespawnMargin            = 60.0
	BonusDespawnMargin           = 40.0
	GateDespawnMargin            = 100.0
	SpawnLateralMargin           = 50.0
	GateLateralMargin            = 40.0
	ExtraGateOffset              = 240.0
	ExtraGateReach               = 160.0 // Max gap center shift between stacked rows
	SpawnPlacementAttempts       = 8
	SpawnPlacementClearY         = 40.0
	ObstacleIntervalFloor        = 0.45
	ObstacleIntervalSpeedDivisor = 400.0
	GateGapFloor                 = 150
	GateGapCeiling               = 300
	GateGapBase                  = 230
	GateGapPerLevel              = 15
	GateGapSpeedDivisor          = 5.0
	GateGapSpread                = 100
	InvertBonusBaseChance        = 0.3
	InvertBonusPerLevel          = 0.06
	InvertBonusScoreDivisor      = 2000.0
	InvertBonusMaxChance         = 0.7
)

// Drone
const (
	DroneWidth, DroneHeight = 40, 18
	DroneY                  = 60.0
	DroneSmoothing          = 0.05
	DroneDropChance         = 0.02
	DroneDropCooldown       = 1.5
	DroneDropOffsetX        = -10.0
	DroneDropOffsetY        = 10.0
)

// Yeti
const (
	YetiWidth, YetiHeight = 54, 72
	YetiSpacingX          = 80.0
	YetiSpacingY          = 60.0
	YetiStartBelow        = 60.0
	YetiRespawnBelow      = 140.0
	YetiRespawnAbove      = 60.0
	YetiBaseSpeed         = 130.0
	YetiSpeedFactor       = 0.42
	YetiSpeedOffset       = 28.0
	YetiSlowFactor        = 0.7
	YetiClosingFactor     = 0.9
	YetiSteering          = 0.04
	YetiStandoff          = 190.0
	YetiKnockbackSpeed    = 200.0
)

// Race pacing and scoring
const (
	SpeedGainPerSecond   = 4.0
	SpeedCeilingHeadroom = 20.0
	GateCeilingRaise     = 4.0
	GatePoints           = 10
	RockPenalty          = 5
	PointsPerSecond      = 10
	RaceGraceSeconds     = 4.0
	FinishGapWidth       = 280
	FinishSpawnY         = -100.0
	FinishClearance      = 200.0 // Minimum gap between the finish row and the last gate above it
)

// Curling
const (
	CurlingThrows         = 3
	CurlingTimeLimit      = 12.0
	StoneRadius           = 20.0
	StoneFriction         = 0.992
	StoneStopSpeed        = 5.0
	StoneLaunchScale      = 5.2
	StoneLaunchX          = ScreenWidth / 2
	StoneLaunchY          = ScreenHeight - 80
	StoneTransfer         = 0.6
	StoneDamping          = 0.6
	CurlingTrackHalfWidth = 200.0
	CurlingFarBoundary    = 100.0
	CurlingTargetX        = ScreenWidth / 2
	CurlingTargetY        = 150.0
	CurlingMaxAngle       = 45.0
	CurlingAngleRate      = 120.0 // Degrees per second
	CurlingPowerRate      = 150.0 // Power units per second
	CurlingRingStep       = 30.0
	CurlingRingCount      = 5
	CurlingRingPoints     = 20
)

// Biathlon
const (
	BiathlonShots          = 5
	BiathlonTimeLimit      = 20.0
	BiathlonTargets        = 5
	BiathlonZoneMinX       = 200.0
	BiathlonZoneMaxX       = ScreenWidth - 200.0
	BiathlonZoneMinY       = 100.0
	BiathlonZoneMaxY       = 350.0
	BiathlonZoneInset      = 20.0
	TargetMinSize          = 30
	TargetMaxSize          = 45
	TargetSpacing          = 20.0
	TargetPlacementRetries = 20
	TargetMinSpeedX        = 30.0
	TargetMaxSpeedX        = 60.0
	TargetMinSpeedY        = 20.0
	TargetMaxSpeedY        = 40.0
	CrosshairSpeed         = 300.0
	CrosshairMargin        = 50.0
	BiathlonPowerRate      = 200.0
	ShooterX               = ScreenWidth / 2
	ShooterY               = ScreenHeight - 80
	ArrowBaseSpeed         = 240.0
	ArrowPowerScale        = 8.0
	WindDrift              = 40.0
	WindPowerDamping       = 0.5
	HitToleranceBase       = 6.0
	HitTolerancePerPower   = 0.1
	HitPoints              = 20
)

// Match
const (
	MaxPower          = 100.0
	StageDelaySeconds = 1.0
	MaxNameLength     = 12
	LeaderboardSize   = 5
)
