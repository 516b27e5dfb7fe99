package parameter

import "time"

// Backdrop: drifting cells behind the landing page with a pointer-following user cell
const (
	BackdropCount          = 50
	BackdropCountLow       = 30
	BackdropVelocity       = 0.25 // per axis, ±
	BackdropRadiusMin      = 2.0
	BackdropRadiusMax      = 5.0
	BackdropMaxSpeed       = 0.8
	BackdropPerturbChance  = 0.02
	BackdropPerturbAmount  = 0.1
	BackdropFanOutMin      = 2
	BackdropFanOutMax      = 5
	BackdropUserMinLinks   = 8
	BackdropThreshold      = 200.0
	BackdropPulseChance    = 0.01
	BackdropPulseChanceLow = 0.005
	BackdropUserPulseBoost = 5.0
	BackdropPulseSpeedMin  = 0.02
	BackdropPulseSpeedMax  = 0.05
	BackdropUserRadius     = 5.0
	BackdropOpacity        = 0.3

	BackdropFollowEase    = 0.05
	BackdropFollowEpsilon = 0.5

	BackdropLinkCooldown = 2000 * time.Millisecond
	BackdropLinkDistance = 150.0

	// Emphasis raises the backdrop opacity while the access form is in use
	BackdropFocusOpacity  = 0.6
	BackdropSubmitOpacity = 0.8
	BackdropEmphasis      = 3000 * time.Millisecond
	BackdropBurstGrowth   = 12.0
	BackdropBurstFade     = 0.96

	// Motes float up from the bottom edge
	BackdropMoteInterval = 300 * time.Millisecond
	BackdropMoteMax      = 60
	BackdropMoteSizeMin  = 1.5
	BackdropMoteSizeMax  = 4.0
	BackdropMoteLifeMin  = 8 * time.Second
	BackdropMoteLifeMax  = 15 * time.Second
	BackdropMoteHueMin   = 170.0
	BackdropMoteHueMax   = 190.0
)

// Signatures: contributor particles
const (
	SignatureParticleCount  = 30
	SignatureParticleLow    = 20
	SignatureDustRadiusMin  = 2.0
	SignatureDustRadiusMax  = 4.0
	SignatureDustSpeedMin   = 0.2
	SignatureDustSpeedMax   = 0.5
	SignatureDustSpin       = 0.005
	SignatureRadiusMin      = 3.0
	SignatureRadiusMax      = 6.0
	SignatureSpeedMin       = 0.1
	SignatureSpeedMax       = 0.3
	SignatureSpin           = 0.0025
	SignatureBurstStart     = 5.0
	SignatureBurstEnd       = 0.01
	SignatureThreshold      = 150.0
	SignatureFanOutMin      = 2
	SignatureFanOutMax      = 4
	SignatureEdgePulse      = 0.001
	SignaturePulseSpeed     = 0.02
	SignaturePulseFade      = 0.98
	SignatureLinkCooldown   = 5000 * time.Millisecond
	SignatureLinkChance     = 0.1
	SignatureLinkDistance   = 150.0
	SignatureBurstGrowth    = 3.0
	SignatureBurstFade      = 0.95
	SignatureBurstPulseFrac = 0.3
	SignatureKeep           = 20
)

// Cell simulation: bouncing cells emitting signal rings
const (
	CellCount           = 8
	CellCountLow        = 5
	CellRadiusMin       = 10.0
	CellRadiusMax       = 25.0
	CellSpeedMin        = 0.2
	CellSpeedMax        = 0.5
	CellEmitChance      = 0.005
	CellEmitChanceLow   = 0.002
	CellSignalStart     = 0.5
	CellSignalGrowth    = 1.0
	CellSignalDecay     = 0.97
	CellSignalEnd       = 0.05
	CellSignalBand      = 10.0
	CellSignalMinStrong = 0.1
	CellFlash           = 1000 * time.Millisecond
)

// Neural simulation: static neurons firing along single links
const (
	NeuronCount         = 10
	NeuronCountLow      = 6
	NeuronRadiusMin     = 5.0
	NeuronRadiusMax     = 10.0
	NeuronFanOutMax     = 2
	NeuronFanOutMaxLow  = 1
	NeuronFireChance    = 0.01
	NeuronFireChanceLow = 0.005
	NeuronPulseSpeed    = 0.05
	NeuronFlash         = 300 * time.Millisecond
)

// Network simulation: hub broadcasting expanding rings
const (
	NetworkNodeCount         = 15
	NetworkNodeCountLow      = 10
	NetworkHubRadius         = 8.0
	NetworkNodeRadiusMin     = 4.0
	NetworkNodeRadiusMax     = 7.0
	NetworkRingMin           = 50.0
	NetworkRingMax           = 120.0
	NetworkBroadcastChance   = 0.01
	NetworkBroadcastChanceLo = 0.005
	NetworkExpansion         = 2.0
	NetworkExpansionLow      = 3.0
	NetworkSignalStart       = 0.8
	NetworkSignalDecay       = 0.98
	NetworkSignalBand        = 5.0
	NetworkSignalMinStrong   = 0.1
	NetworkHubFlash          = 500 * time.Millisecond
	NetworkNodeFlashMin      = 500 * time.Millisecond
	NetworkNodeFlashMax      = 1000 * time.Millisecond
)

// Brain simulation: five regions exchanging pulses
const (
	BrainRegionRadius    = 15.0
	BrainMeshGapLow      = 2
	BrainActivityDecay   = 0.95
	BrainFireChance      = 0.01
	BrainFireChanceLow   = 0.005
	BrainFireActivity    = 0.8
	BrainPulseLinksLow   = 2
	BrainPulseSpeed      = 0.03
	BrainActiveThreshold = 0.5
)

// Astrorganism simulation: organic and digital elements integrating through pulses
const (
	ElementCount         = 30
	ElementCountLow      = 20
	ElementRadiusMin     = 3.0
	ElementRadiusMax     = 7.0
	ElementRingMin       = 30.0
	ElementRingMax       = 110.0
	ElementGoldWeight    = 0.3
	ElementFanOutMin     = 3
	ElementFanOutMax     = 7
	ElementFanOutMinLow  = 2
	ElementFanOutMaxLow  = 4
	ElementFireChance    = 0.02
	ElementFireChanceLow = 0.01
	ElementPulsesMax     = 3
	ElementPulsesMaxLow  = 2
	ElementPulseSpeedMin = 0.02
	ElementPulseSpeedMax = 0.04
	ElementIntegrate     = 0.1
	ElementIntegrateLow  = 0.05
	ElementAmbientRadius = 100.0
	ElementAmbientLow    = 80.0
)

// Constellation: star field linked around the pointer, distances in percent of the area
const (
	StarCount          = 150
	StarCountLow       = 80
	StarReach          = 20.0
	StarLinkRadius     = 15.0
	StarMaxLinks       = 4
	StarRadiusMin      = 1.0
	StarRadiusMax      = 2.5
	StarStrokeStrength = 0.5
)

// Luna ring: orbiting points around the access form, linked by proximity
const (
	RingPointCount      = 35
	RingPointCountLow   = 20
	RingArcShare        = 0.4
	RingBaseFraction    = 0.45
	RingJitter          = 25.0
	RingArcSpread       = 0.8 // × π
	RingAngularMin      = 0.0008
	RingAngularMax      = 0.0023
	RingOscillation     = 8.0
	RingFrequencyMin    = 0.016 * 0.02
	RingFrequencyMax    = 0.016 * 0.05
	RingSizeMin         = 1.0
	RingSizeMax         = 2.5
	RingConnectRadius   = 60.0
	RingConnectStrength = 0.4
	RingGlowScale       = 4.0
	RingEmanation       = RingConnectRadius * 2.5
	RingPointerReach    = 80.0
	RingPointerPull     = 2.0
)
