package noos

// DevID selects the transceiver variant.
type DevID uint32

const (
	IDAD9361 DevID = iota
	IDAD9364
	IDAD9363A
)

// InitParam is the AD9361_InitParam block handed to Driver.Init.
//
// The driver keeps pointers into the GPIO and SPI parameters after Init
// returns, so the block must stay at a fixed address while a device is
// live. The block contains no pointers; peripheral bindings are slot
// handles in the descriptor fields. Across the wasm boundary the block
// is marshalled packed and little-endian in field order.
type InitParam struct {
	// Device Properties
	DevSel           DevID
	IDNo             uint8
	ReferenceClkRate uint32

	// Mode
	TwoRxTwoTxModeEnable                         uint8
	OneRxOneTxModeUseRxNum                       uint8
	OneRxOneTxModeUseTxNum                       uint8
	FrequencyDivisionDuplexModeEnable            uint8
	FrequencyDivisionDuplexIndependentModeEnable uint8
	TDDUseDualSynthModeEnable                    uint8
	TDDSkipVCOCalEnable                          uint8
	TxFastlockDelayNs                            uint32
	RxFastlockDelayNs                            uint32
	RxFastlockPincontrolEnable                   uint8
	TxFastlockPincontrolEnable                   uint8
	ExternalRxLOEnable                           uint8
	ExternalTxLOEnable                           uint8

	// DC offset
	DCOffsetTrackingUpdateEventMask uint8
	DCOffsetAttenuationHighRange    uint8
	DCOffsetAttenuationLowRange     uint8
	DCOffsetCountHighRange          uint8
	DCOffsetCountLowRange           uint8
	SplitGainTableModeEnable        uint8

	// Clock tree
	TRXSynthesizerTargetFrefOverwriteHz uint32
	QECTrackingSlowModeEnable           uint8
	ENSMEnablePinPulseModeEnable        uint8
	ENSMEnableTxnrxControlEnable        uint8
	RxSynthesizerFrequencyHz            uint64
	TxSynthesizerFrequencyHz            uint64
	TxLOPowerdownManagedEnable          uint8
	RxPathClockFrequencies              [6]uint32
	TxPathClockFrequencies              [6]uint32
	RFRxBandwidthHz                     uint32
	RFTxBandwidthHz                     uint32
	RxRFPortInputSelect                 uint32
	TxRFPortInputSelect                 uint32
	TxAttenuationMdB                    int32
	UpdateTxGainInAlertEnable           uint8
	XODisableUseExtRefclkEnable         uint8
	DCXOCoarseAndFineTune               [2]uint32
	ClkOutputModeSelect                 uint32

	// Gain control
	GCRx1Mode                        uint8
	GCRx2Mode                        uint8
	GCADCLargeOverloadThresh         uint8
	GCADCOvrSampleSize               uint8
	GCADCSmallOverloadThresh         uint8
	GCDecPowMeasurementDuration      uint16
	GCDigGainEnable                  uint8
	GCLMTOverloadHighThresh          uint16
	GCLMTOverloadLowThresh           uint16
	GCLowPowerThresh                 uint8
	GCMaxDigGain                     uint8
	GCUseRxFIROutForDecPwrMeasEnable uint8

	// Gain MGC Control
	MGCDecGainStep               uint8
	MGCIncGainStep               uint8
	MGCRx1CtrlInpEnable          uint8
	MGCRx2CtrlInpEnable          uint8
	MGCSplitTableCtrlInpGainMode uint8

	// Gain AGC Control
	AGCADCLargeOverloadExceedCounter           uint8
	AGCADCLargeOverloadIncSteps                uint8
	AGCADCLMTSmallOverloadPreventGainIncEnable uint8
	AGCADCSmallOverloadExceedCounter           uint8
	AGCDigGainStepSize                         uint8
	AGCDigSaturationExceedCounter              uint8
	AGCGainUpdateIntervalUs                    uint32
	AGCImmedGainChangeIfLargeADCOverloadEnable uint8
	AGCImmedGainChangeIfLargeLMTOverloadEnable uint8
	AGCInnerThreshHigh                         uint8
	AGCInnerThreshHighDecSteps                 uint8
	AGCInnerThreshLow                          uint8
	AGCInnerThreshLowIncSteps                  uint8
	AGCLMTOverloadLargeExceedCounter           uint8
	AGCLMTOverloadLargeIncSteps                uint8
	AGCLMTOverloadSmallExceedCounter           uint8
	AGCOuterThreshHigh                         uint8
	AGCOuterThreshHighDecSteps                 uint8
	AGCOuterThreshLow                          uint8
	AGCOuterThreshLowIncSteps                  uint8
	AGCAttackDelayExtraMarginUs                uint32
	AGCSyncForGainCounterEnable                uint8

	// Fast AGC
	FAGCDecPowMeasuremntDuration             uint32
	FAGCStateWaitTimeNs                      uint32
	FAGCAllowAGCGainIncrease                 uint8
	FAGCLPThreshIncrementTime                uint32
	FAGCLPThreshIncrementSteps               uint32
	FAGCLockLevelLMTGainIncreaseEn           uint8
	FAGCLockLevelGainIncreaseUpperLimit      uint32
	FAGCLPFFinalSettlingSteps                uint32
	FAGCLMTFinalSettlingSteps                uint32
	FAGCFinalOverrangeCount                  uint32
	FAGCGainIncreaseAfterGainLockEn          uint8
	FAGCGainIndexTypeAfterExitRxMode         uint32
	FAGCUseLastLockLevelForSetGainEn         uint8
	FAGCRstGLAStrongerSigThreshExceededEn    uint8
	FAGCOptimizedGainOffset                  uint32
	FAGCRstGLAStrongerSigThreshAboveLl       uint32
	FAGCRstGLAEngergyLostSigThreshExceededEn uint8
	FAGCRstGLAEngergyLostGotoOptimGainEn     uint8
	FAGCRstGLAEngergyLostSigThreshBelowLl    uint32
	FAGCEnergyLostStrongerSigGainLockExitCnt uint32
	FAGCRstGLALargeADCOverloadEn             uint8
	FAGCRstGLALargeLMTOverloadEn             uint8
	FAGCRstGLAEnAGCPulledHighEn              uint8
	FAGCRstGLAIfEnAGCPulledHighMode          uint32
	FAGCPowerMeasurementDurationInState5     uint32
	FAGCLargeOverloadIncSteps                uint32

	// RSSI Control
	RSSIDelay                 uint32
	RSSIDuration              uint32
	RSSIRestartMode           uint8
	RSSIUnitIsRxSamplesEnable uint8
	RSSIWait                  uint32

	// Aux ADC Control
	AuxADCDecimation uint32
	AuxADCRate       uint32

	// AuxDAC Control
	AuxDACManualModeEnable     uint8
	AuxDAC1DefaultValueMV      uint32
	AuxDAC1ActiveInRxEnable    uint8
	AuxDAC1ActiveInTxEnable    uint8
	AuxDAC1ActiveInAlertEnable uint8
	AuxDAC1RxDelayUs           uint32
	AuxDAC1TxDelayUs           uint32
	AuxDAC2DefaultValueMV      uint32
	AuxDAC2ActiveInRxEnable    uint8
	AuxDAC2ActiveInTxEnable    uint8
	AuxDAC2ActiveInAlertEnable uint8
	AuxDAC2RxDelayUs           uint32
	AuxDAC2TxDelayUs           uint32

	// Temperature Sensor Control
	TempSenseDecimation                uint32
	TempSenseMeasurementIntervalMs     uint16
	TempSenseOffsetSigned              int8
	TempSensePeriodicMeasurementEnable uint8

	// Control Out Setup
	CtrlOutsEnableMask          uint8
	CtrlOutsIndex               uint8
	ELNASettlingDelayNs         uint32
	ELNAGainMdB                 uint32
	ELNABypassLossMdB           uint32
	ELNARx1GPO0ControlEnable    uint8
	ELNARx2GPO1ControlEnable    uint8
	ELNAGaintableAllIndexEnable uint8

	// Digital Interface Control
	DigitalInterfaceTuneSkipMode   uint8
	DigitalInterfaceTuneFIRDisable uint8
	PPTxSwapEnable                 uint8
	PPRxSwapEnable                 uint8
	TxChannelSwapEnable            uint8
	RxChannelSwapEnable            uint8
	RxFramePulseModeEnable         uint8
	TwoTTwoRTimingEnable           uint8
	InvertDataBusEnable            uint8
	InvertDataClkEnable            uint8
	FDDAltWordOrderEnable          uint8
	InvertRxFrameEnable            uint8
	FDDRxRate2txEnable             uint8
	SwapPortsEnable                uint8
	SingleDataRateEnable           uint8
	LVDSModeEnable                 uint8
	HalfDuplexModeEnable           uint8
	SinglePortModeEnable           uint8
	FullPortEnable                 uint8
	FullDuplexSwapBitsEnable       uint8
	DelayRxData                    uint32
	RxDataClockDelay               uint32
	RxDataDelay                    uint32
	TxFbClockDelay                 uint32
	TxDataDelay                    uint32
	LVDSBiasMV                     uint32
	LVDSRxOnchipTerminationEnable  uint8
	Rx1rx2PhaseInversionEn         uint8
	LVDSInvert1Control             uint8
	LVDSInvert2Control             uint8

	// GPO Control
	GPOManualModeEnable         uint8
	GPOManualModeEnableMask     uint32
	GPO0InactiveStateHighEnable uint8
	GPO1InactiveStateHighEnable uint8
	GPO2InactiveStateHighEnable uint8
	GPO3InactiveStateHighEnable uint8
	GPO0SlaveRxEnable           uint8
	GPO0SlaveTxEnable           uint8
	GPO1SlaveRxEnable           uint8
	GPO1SlaveTxEnable           uint8
	GPO2SlaveRxEnable           uint8
	GPO2SlaveTxEnable           uint8
	GPO3SlaveRxEnable           uint8
	GPO3SlaveTxEnable           uint8
	GPO0RxDelayUs               uint8
	GPO0TxDelayUs               uint8
	GPO1RxDelayUs               uint8
	GPO1TxDelayUs               uint8
	GPO2RxDelayUs               uint8
	GPO2TxDelayUs               uint8
	GPO3RxDelayUs               uint8
	GPO3TxDelayUs               uint8

	// Tx Monitor Control
	LowHighGainThresholdMdB uint32
	LowGainDB               uint32
	HighGainDB              uint32
	TxMonTrackEn            uint8
	OneShotModeEn           uint8
	TxMonDelay              uint32
	TxMonDuration           uint32
	Tx1MonFrontEndGain      uint32
	Tx2MonFrontEndGain      uint32
	Tx1MonLOCM              uint32
	Tx2MonLOCM              uint32

	// Platform
	GPIOResetb GPIOInitParam
	GPIOSync   GPIOInitParam
	GPIOCalSw1 GPIOInitParam
	GPIOCalSw2 GPIOInitParam
	SPIParam   SPIInitParam
}

// DefaultInitParam returns the parameters of the no-OS AD9361 reference
// project: 40 MHz reference, 2R2T FDD, RX LO 2.4 GHz, TX LO 2.479 GHz,
// 18 MHz bandwidth and slow attack AGC on both receivers. All GPIOs are
// unused.
func DefaultInitParam() InitParam {
	return InitParam{
		DevSel:                                   IDAD9361,
		ReferenceClkRate:                         40000000,
		TwoRxTwoTxModeEnable:                     1,
		OneRxOneTxModeUseRxNum:                   1,
		OneRxOneTxModeUseTxNum:                   1,
		FrequencyDivisionDuplexModeEnable:        1,
		DCOffsetTrackingUpdateEventMask:          5,
		DCOffsetAttenuationHighRange:             6,
		DCOffsetAttenuationLowRange:              5,
		DCOffsetCountHighRange:                   0x28,
		DCOffsetCountLowRange:                    0x32,
		TRXSynthesizerTargetFrefOverwriteHz:      80008000,
		RxSynthesizerFrequencyHz:                 2400000000,
		TxSynthesizerFrequencyHz:                 2479000000,
		TxLOPowerdownManagedEnable:               1,
		RxPathClockFrequencies:                   [6]uint32{983040000, 245760000, 122880000, 61440000, 30720000, 30720000},
		TxPathClockFrequencies:                   [6]uint32{983040000, 122880000, 122880000, 61440000, 30720000, 30720000},
		RFRxBandwidthHz:                          18000000,
		RFTxBandwidthHz:                          18000000,
		TxAttenuationMdB:                         10000,
		DCXOCoarseAndFineTune:                    [2]uint32{8, 5920},
		GCRx1Mode:                                2,
		GCRx2Mode:                                2,
		GCADCLargeOverloadThresh:                 58,
		GCADCOvrSampleSize:                       4,
		GCADCSmallOverloadThresh:                 47,
		GCDecPowMeasurementDuration:              8192,
		GCLMTOverloadHighThresh:                  800,
		GCLMTOverloadLowThresh:                   704,
		GCLowPowerThresh:                         24,
		GCMaxDigGain:                             15,
		MGCDecGainStep:                           2,
		MGCIncGainStep:                           2,
		AGCADCLargeOverloadExceedCounter:         10,
		AGCADCLargeOverloadIncSteps:              2,
		AGCADCSmallOverloadExceedCounter:         10,
		AGCDigGainStepSize:                       4,
		AGCDigSaturationExceedCounter:            3,
		AGCGainUpdateIntervalUs:                  1000,
		AGCInnerThreshHigh:                       10,
		AGCInnerThreshHighDecSteps:               1,
		AGCInnerThreshLow:                        12,
		AGCInnerThreshLowIncSteps:                1,
		AGCLMTOverloadLargeExceedCounter:         10,
		AGCLMTOverloadLargeIncSteps:              2,
		AGCLMTOverloadSmallExceedCounter:         10,
		AGCOuterThreshHigh:                       5,
		AGCOuterThreshHighDecSteps:               2,
		AGCOuterThreshLow:                        18,
		AGCOuterThreshLowIncSteps:                2,
		AGCAttackDelayExtraMarginUs:              1,
		FAGCDecPowMeasuremntDuration:             64,
		FAGCStateWaitTimeNs:                      260,
		FAGCLPThreshIncrementTime:                5,
		FAGCLPThreshIncrementSteps:               1,
		FAGCLockLevelLMTGainIncreaseEn:           1,
		FAGCLockLevelGainIncreaseUpperLimit:      5,
		FAGCLPFFinalSettlingSteps:                1,
		FAGCLMTFinalSettlingSteps:                1,
		FAGCFinalOverrangeCount:                  3,
		FAGCUseLastLockLevelForSetGainEn:         1,
		FAGCRstGLAStrongerSigThreshExceededEn:    1,
		FAGCOptimizedGainOffset:                  5,
		FAGCRstGLAStrongerSigThreshAboveLl:       10,
		FAGCRstGLAEngergyLostSigThreshExceededEn: 1,
		FAGCRstGLAEngergyLostGotoOptimGainEn:     1,
		FAGCRstGLAEngergyLostSigThreshBelowLl:    10,
		FAGCEnergyLostStrongerSigGainLockExitCnt: 8,
		FAGCRstGLALargeADCOverloadEn:             1,
		FAGCRstGLALargeLMTOverloadEn:             1,
		FAGCPowerMeasurementDurationInState5:     64,
		FAGCLargeOverloadIncSteps:                2,
		RSSIDelay:                                1,
		RSSIDuration:                             1000,
		RSSIRestartMode:                          3,
		RSSIWait:                                 1,
		AuxADCDecimation:                         256,
		AuxADCRate:                               40000000,
		AuxDACManualModeEnable:                   1,
		TempSenseDecimation:                      256,
		TempSenseMeasurementIntervalMs:           1000,
		TempSenseOffsetSigned:                    -49,
		TempSensePeriodicMeasurementEnable:       1,
		CtrlOutsEnableMask:                       0xFF,
		PPTxSwapEnable:                           1,
		PPRxSwapEnable:                           1,
		RxFramePulseModeEnable:                   1,
		LVDSModeEnable:                           1,
		RxDataDelay:                              4,
		TxFbClockDelay:                           7,
		LVDSBiasMV:                               150,
		LVDSRxOnchipTerminationEnable:            1,
		LVDSInvert1Control:                       0xFF,
		LVDSInvert2Control:                       0x0F,
		LowHighGainThresholdMdB:                  37000,
		HighGainDB:                               24,
		TxMonDelay:                               511,
		TxMonDuration:                            8192,
		Tx1MonFrontEndGain:                       2,
		Tx2MonFrontEndGain:                       2,
		Tx1MonLOCM:                               48,
		Tx2MonLOCM:                               48,

		GPIOResetb: GPIOInitParam{Number: -1},
		GPIOSync:   GPIOInitParam{Number: -1},
		GPIOCalSw1: GPIOInitParam{Number: -1},
		GPIOCalSw2: GPIOInitParam{Number: -1},
		SPIParam:   SPIInitParam{MaxSpeedHz: 10000000, Mode: SPIMode1},
	}
}
