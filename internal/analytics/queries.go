package analytics

import "github.com/davidbz/haku/internal/domain"

// One query document per dataset. Adaptive datasets filter on datetime;
// daily storage snapshots filter on date.
var queryDocuments = map[domain.Dataset]string{
	domain.DatasetWorkersInvocations: `
query WorkersInvocations($accountTag: String!, $start: Time!, $end: Time!) {
  viewer {
    accounts(filter: { accountTag: $accountTag }) {
      workersInvocationsAdaptive(limit: 10000, filter: { datetime_geq: $start, datetime_leq: $end }) {
        sum { requests errors cpuTimeUs }
      }
    }
  }
}`,

	domain.DatasetR2Operations: `
query R2Operations($accountTag: String!, $start: Time!, $end: Time!) {
  viewer {
    accounts(filter: { accountTag: $accountTag }) {
      r2OperationsAdaptiveGroups(limit: 10000, filter: { datetime_geq: $start, datetime_leq: $end }) {
        dimensions { actionType }
        sum { requests }
      }
    }
  }
}`,

	domain.DatasetR2Storage: `
query R2Storage($accountTag: String!, $start: Time!, $end: Time!) {
  viewer {
    accounts(filter: { accountTag: $accountTag }) {
      r2StorageAdaptiveGroups(limit: 100, filter: { datetime_geq: $start, datetime_leq: $end }) {
        max { payloadSize metadataSize objectCount }
      }
    }
  }
}`,

	domain.DatasetKVOperations: `
query KVOperations($accountTag: String!, $start: Time!, $end: Time!) {
  viewer {
    accounts(filter: { accountTag: $accountTag }) {
      kvOperationsAdaptiveGroups(limit: 10000, filter: { datetime_geq: $start, datetime_leq: $end }) {
        dimensions { actionType }
        sum { requests }
      }
    }
  }
}`,

	domain.DatasetKVStorage: `
query KVStorage($accountTag: String!, $startDate: Date!, $endDate: Date!) {
  viewer {
    accounts(filter: { accountTag: $accountTag }) {
      kvStorageAdaptiveGroups(limit: 100, filter: { date_geq: $startDate, date_leq: $endDate }) {
        max { byteCount keyCount }
      }
    }
  }
}`,

	domain.DatasetD1Analytics: `
query D1Analytics($accountTag: String!, $start: Time!, $end: Time!) {
  viewer {
    accounts(filter: { accountTag: $accountTag }) {
      d1AnalyticsAdaptiveGroups(limit: 10000, filter: { datetime_geq: $start, datetime_leq: $end }) {
        dimensions { databaseId }
        sum { readQueries writeQueries rowsRead rowsWritten }
      }
    }
  }
}`,

	domain.DatasetImagesRequests: `
query ImagesRequests($accountTag: String!, $start: Time!, $end: Time!) {
  viewer {
    accounts(filter: { accountTag: $accountTag }) {
      imagesRequestsAdaptiveGroups(limit: 10000, filter: { datetime_geq: $start, datetime_leq: $end }) {
        sum { requests }
      }
    }
  }
}`,

	domain.DatasetAIInference: `
query AIInference($accountTag: String!, $start: Time!, $end: Time!) {
  viewer {
    accounts(filter: { accountTag: $accountTag }) {
      aiInferenceAdaptiveGroups(limit: 10000, filter: { datetime_geq: $start, datetime_leq: $end }) {
        sum { neurons totalRequests }
      }
    }
  }
}`,

	domain.DatasetVectorizeQueries: `
query VectorizeQueries($accountTag: String!, $start: Time!, $end: Time!) {
  viewer {
    accounts(filter: { accountTag: $accountTag }) {
      vectorizeQueriesAdaptiveGroups(limit: 10000, filter: { datetime_geq: $start, datetime_leq: $end }) {
        sum { queriedVectorDimensions }
      }
    }
  }
}`,

	domain.DatasetVectorizeStorage: `
query VectorizeStorage($accountTag: String!, $startDate: Date!, $endDate: Date!) {
  viewer {
    accounts(filter: { accountTag: $accountTag }) {
      vectorizeStorageAdaptiveGroups(limit: 100, filter: { date_geq: $startDate, date_leq: $endDate }) {
        max { storedVectorDimensions vectorCount }
      }
    }
  }
}`,
}
