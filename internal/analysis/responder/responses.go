package responder

// Canned replies of the BigQuery assistant.
const (
	HelloResponse = "Hello! Welcome to TrueX BigQuery Assistant. I'm here to help you with data analysis, SQL queries, and getting insights from your BigQuery datasets. What can I help you analyze today?"

	HiResponse = "Hi there! I'm your BigQuery Assistant. How can I help you with your data analysis today?"

	BigQueryResponse = "BigQuery is Google's fully managed, serverless data warehouse that enables scalable analysis over petabytes of data. I can help you with:\n" +
		"• Writing optimized SQL queries\n" +
		"• Schema design and partitioning\n" +
		"• Performance optimization\n" +
		"• Data transformation and cleaning\n" +
		"• Cost management\n" +
		"• Machine learning integration\n\n" +
		"What specific BigQuery task do you need help with?"

	SQLResponse = "I'd be happy to help you with SQL queries for BigQuery! I can assist with:\n" +
		"• Writing complex SELECT statements\n" +
		"• JOINs and subqueries\n" +
		"• Window functions and analytics\n" +
		"• Array and struct operations\n" +
		"• User-defined functions\n" +
		"• Query optimization techniques\n\n" +
		"What kind of SQL query do you need help with?"

	QueryResponse = "For BigQuery queries, I can help you:\n" +
		"• Write efficient SQL code\n" +
		"• Optimize query performance\n" +
		"• Debug query errors\n" +
		"• Explain query execution plans\n" +
		"• Suggest best practices\n" +
		"• Handle large datasets\n\n" +
		"Share your query or describe what you're trying to achieve!"

	DataResponse = "I can help you work with data in BigQuery! I can assist with:\n" +
		"• Data exploration and profiling\n" +
		"• Data cleaning and validation\n" +
		"• Statistical analysis\n" +
		"• Trend identification\n" +
		"• Data visualization suggestions\n" +
		"• ETL processes\n\n" +
		"What data analysis task are you working on?"

	TableResponse = "For BigQuery tables, I can help with:\n" +
		"• Table schema design\n" +
		"• Partitioning and clustering strategies\n" +
		"• Data loading techniques\n" +
		"• Table maintenance\n" +
		"• Access control and security\n" +
		"• Performance tuning\n\n" +
		"What specific table operation do you need assistance with?"

	PerformanceResponse = "I can help optimize your BigQuery performance and manage costs! Key areas include:\n" +
		"• Query optimization techniques\n" +
		"• Partitioning and clustering\n" +
		"• Slot management\n" +
		"• Cost control strategies\n" +
		"• Monitoring and alerting\n\n" +
		"What performance or cost aspect would you like to explore?"

	HelpResponse = "I'm your BigQuery Assistant, specialized in data analytics and SQL. I can help with:\n" +
		"💾 Writing and optimizing SQL queries\n" +
		"📊 Data analysis and insights\n" +
		"⚡ Performance tuning\n" +
		"🔧 Schema design\n" +
		"💰 Cost optimization\n" +
		"📈 Data visualization\n\n" +
		"What BigQuery task do you need help with?"

	CapabilityResponse = "As your BigQuery Assistant, I specialize in:\n\n" +
		"• **SQL Development**: Writing complex queries, optimization, debugging\n" +
		"• **Data Analysis**: Statistical analysis, pattern recognition, insights\n" +
		"• **Performance**: Query tuning, partitioning, clustering strategies\n" +
		"• **Architecture**: Schema design, ETL processes, data modeling\n" +
		"• **Best Practices**: Security, cost management, governance\n\n" +
		"How can I help with your BigQuery project today?"

	QuestionResponse = "That's a great question about BigQuery! To provide you with the most accurate assistance, could you tell me:\n" +
		"• What specific task you're trying to accomplish?\n" +
		"• What datasets or tables you're working with?\n" +
		"• Any challenges or errors you're encountering?\n\n" +
		"This will help me provide you with the best possible guidance for your data analysis needs."

	DefaultResponse = "I'm here to help with your BigQuery data analysis needs! Whether you need assistance writing SQL queries, optimizing performance, analyzing data patterns, or getting insights from your datasets, I'm ready to help. What specific BigQuery task or data challenge can I assist you with?"
)
