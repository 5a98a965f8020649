package serviceInfo

import "fmt"

type ServiceInfo string

var (
	SERVICE_NAME        ServiceInfo = "SeqLab Sequence Toolbox Service"
	SERVICE_WELCOME     ServiceInfo = "Welcome to the SeqLab sequence analysis API!"
	SERVICE_DESCRIPTION ServiceInfo = "FASTA/FASTQ statistics, motif search, GC windows and variant set comparison."

	SERVICE_ARTIFACT    ServiceInfo = "seqlab"
	SERVICE_VERSION     ServiceInfo = "0.1.0"
	SERVICE_TYPE_NO_VER ServiceInfo = ServiceInfo(fmt.Sprintf("org.seqlab:%s", SERVICE_ARTIFACT))
	SERVICE_ID          ServiceInfo = SERVICE_TYPE_NO_VER
	SERVICE_TYPE        ServiceInfo = ServiceInfo(fmt.Sprintf("%s:%s", SERVICE_TYPE_NO_VER, SERVICE_VERSION))
)
