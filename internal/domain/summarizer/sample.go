package summarizer

// SampleText is the paragraph offered by the "Sample Text" action.
const SampleText = `Artificial Intelligence (AI) has transformed various industries, from healthcare to finance, by automating tasks and improving efficiency. In healthcare, AI-powered algorithms assist doctors in diagnosing diseases like cancer with greater accuracy. In finance, AI-driven systems help detect fraudulent transactions, ensuring security in digital payments. Additionally, AI is widely used in customer service through chatbots that provide instant support to users. Despite these advantages, AI also raises ethical concerns, such as job displacement and privacy issues. Many experts argue that while AI increases productivity, it should be regulated to prevent misuse. Governments and organizations are now focusing on creating policies to ensure AI is used responsibly. Furthermore, advancements in AI, such as natural language processing and machine learning, continue to improve human-computer interaction. As AI evolves, it is crucial to balance innovation with ethical considerations to create a future where technology benefits everyone.`
