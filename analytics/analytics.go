package analytics

type DataCollectorConfig struct {
	FileName      string
	CollectorType DataCollectorType
}

type DataCollectorType string

const LOG_FILE_DATA_COLLECTOR DataCollectorType = "LOG_FILE_DATA_COLLECTOR"
const NOOP_DATA_COLLECTOR DataCollectorType = "NOOP_DATA_COLLECTOR"

// StepDataCollector records the outcome of every workflow step attempt for
// offline analysis of run behavior.
type StepDataCollector interface {
	RecordStepSuccess(workflowId string, workflowName string, stepName string, output any)
	RecordStepFailure(workflowId string, workflowName string, stepName string, reason string)
}

var stepCollector StepDataCollector

func InitDataCollector(config DataCollectorConfig) error {
	switch config.CollectorType {
	case LOG_FILE_DATA_COLLECTOR:
		c, err := NewLogFileDataCollector(config.FileName)
		if err != nil {
			return err
		}
		stepCollector = c
	}
	return nil
}

func RecordStepSuccess(workflowId string, workflowName string, stepName string, output any) {
	if stepCollector == nil {
		return
	}
	stepCollector.RecordStepSuccess(workflowId, workflowName, stepName, output)
}

func RecordStepFailure(workflowId string, workflowName string, stepName string, reason string) {
	if stepCollector == nil {
		return
	}
	stepCollector.RecordStepFailure(workflowId, workflowName, stepName, reason)
}
